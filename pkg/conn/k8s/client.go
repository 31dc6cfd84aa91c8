package k8s

import (
	"context"
	"strings"

	kubeauto "k8s.io/api/autoscaling/v1"
	kubecore "k8s.io/api/core/v1"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8s "k8s.io/client-go/kubernetes"
)

// subset of k8s.Clientset
type K8sClient interface {
	GetScale(ctx context.Context, namespace string, deplname string) (*kubeauto.Scale, error)
	UpdateScale(ctx context.Context, namespace string, deplname string, scale *kubeauto.Scale) (*kubeauto.Scale, error)

	DeletePod(ctx context.Context, namespace string, name string) error
	FindPods(ctx context.Context, namespace string, labels map[string]string) ([]kubecore.Pod, error)
}

// A wrapper for the type k8s.Clientset; because it does not prefer method chain-style invocations of that type.
type k8sClient struct {
	client *k8s.Clientset
}

// type check: k8sClient implements K8sClient
var _ K8sClient = &k8sClient{}

func WrapK8sClient(clientset *k8s.Clientset) K8sClient {
	return &k8sClient{client: clientset}
}

func (k *k8sClient) GetScale(ctx context.Context, namespace string, deplname string) (*kubeauto.Scale, error) {
	return k.client.AppsV1().Deployments(namespace).GetScale(ctx, deplname, kubeapimeta.GetOptions{})
}

func (k *k8sClient) UpdateScale(ctx context.Context, namespace string, deplname string, scale *kubeauto.Scale) (*kubeauto.Scale, error) {
	return k.client.AppsV1().Deployments(namespace).UpdateScale(ctx, deplname, scale, kubeapimeta.UpdateOptions{})
}

func (k *k8sClient) DeletePod(ctx context.Context, namespace string, podname string) error {
	return k.client.CoreV1().Pods(namespace).Delete(ctx, podname, *kubeapimeta.NewDeleteOptions(0))
}

func (k *k8sClient) FindPods(ctx context.Context, namespace string, labels map[string]string) ([]kubecore.Pod, error) {
	selector := []string{}
	for key, value := range labels {
		selector = append(selector, key+"="+value)
	}
	resp, err := k.client.CoreV1().Pods(namespace).List(ctx, kubeapimeta.ListOptions{
		LabelSelector: strings.Join(selector, ","),
	})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}
