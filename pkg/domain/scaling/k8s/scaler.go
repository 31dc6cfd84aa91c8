package k8s

import (
	"context"

	connk8s "github.com/autoserve/autoserve/pkg/conn/k8s"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
)

// Scaler reads and rewrites the replica count of deployments.
type Scaler interface {
	// CurrentReplicas reads how many replicas the deployment asks for.
	CurrentReplicas(ctx context.Context, namespace string, name string) (int, error)

	// Scale sets the desired replica count of the deployment.
	Scale(ctx context.Context, namespace string, name string, replicas int) error
}

type scaler struct {
	client connk8s.K8sClient
}

func New(client connk8s.K8sClient) Scaler {
	return &scaler{client: client}
}

func (s *scaler) CurrentReplicas(ctx context.Context, namespace string, name string) (int, error) {
	scale, err := s.client.GetScale(ctx, namespace, name)
	if err != nil {
		if kubeerr.IsNotFound(err) {
			return 0, kerr.Missing{Table: "deployments", Identity: namespace + "/" + name}
		}
		return 0, err
	}
	return int(scale.Spec.Replicas), nil
}

func (s *scaler) Scale(ctx context.Context, namespace string, name string, replicas int) error {
	scale, err := s.client.GetScale(ctx, namespace, name)
	if err != nil {
		if kubeerr.IsNotFound(err) {
			return kerr.Missing{Table: "deployments", Identity: namespace + "/" + name}
		}
		return err
	}

	scale.Spec.Replicas = int32(replicas)
	if _, err := s.client.UpdateScale(ctx, namespace, name, scale); err != nil {
		return err
	}
	return nil
}
