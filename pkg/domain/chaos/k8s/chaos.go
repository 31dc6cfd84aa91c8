package k8s

import (
	"context"

	connk8s "github.com/autoserve/autoserve/pkg/conn/k8s"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	"github.com/autoserve/autoserve/pkg/utils/slices"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	kubecore "k8s.io/api/core/v1"
)

// Interface lists and kills pods for fault injection runs.
type Interface interface {
	// Victims returns names of running pods eligible for killing.
	//
	// With service != "", only pods labelled `app=<service>` are returned.
	Victims(ctx context.Context, namespace string, service string) ([]string, error)

	// Kill deletes the pod immediately.
	//
	// When no pod with the name exists, it returns error wrapping
	// kerr.ErrMissing.
	Kill(ctx context.Context, namespace string, pod string) error
}

type chaos struct {
	client connk8s.K8sClient
}

func New(client connk8s.K8sClient) Interface {
	return &chaos{client: client}
}

func (c *chaos) Victims(ctx context.Context, namespace string, service string) ([]string, error) {
	labels := map[string]string{}
	if service != "" {
		labels["app"] = service
	}

	pods, err := c.client.FindPods(ctx, namespace, labels)
	if err != nil {
		return nil, err
	}

	running := slices.Filter(pods, func(p kubecore.Pod) bool {
		return p.Status.Phase == kubecore.PodRunning
	})
	return slices.Map(running, func(p kubecore.Pod) string { return p.Name }), nil
}

func (c *chaos) Kill(ctx context.Context, namespace string, pod string) error {
	if err := c.client.DeletePod(ctx, namespace, pod); err != nil {
		if kubeerr.IsNotFound(err) {
			return kerr.Missing{Table: "pods", Identity: namespace + "/" + pod}
		}
		return err
	}
	return nil
}
