// this package provides a "mock" k8s client for testing.
package mocks

import (
	"context"
	"errors"

	kubeauto "k8s.io/api/autoscaling/v1"
	kubecore "k8s.io/api/core/v1"
)

type MockK8sClient struct {
	Impl struct {
		GetScale    func(ctx context.Context, namespace string, deplname string) (*kubeauto.Scale, error)
		UpdateScale func(ctx context.Context, namespace string, deplname string, scale *kubeauto.Scale) (*kubeauto.Scale, error)
		DeletePod   func(ctx context.Context, namespace string, name string) error
		FindPods    func(ctx context.Context, namespace string, labels map[string]string) ([]kubecore.Pod, error)
	}
}

func NewMockK8sClient() *MockK8sClient {
	return &MockK8sClient{}
}

func (m *MockK8sClient) GetScale(ctx context.Context, namespace string, deplname string) (*kubeauto.Scale, error) {
	if m.Impl.GetScale == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.GetScale(ctx, namespace, deplname)
}

func (m *MockK8sClient) UpdateScale(ctx context.Context, namespace string, deplname string, scale *kubeauto.Scale) (*kubeauto.Scale, error) {
	if m.Impl.UpdateScale == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.UpdateScale(ctx, namespace, deplname, scale)
}

func (m *MockK8sClient) DeletePod(ctx context.Context, namespace string, name string) error {
	if m.Impl.DeletePod == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.DeletePod(ctx, namespace, name)
}

func (m *MockK8sClient) FindPods(ctx context.Context, namespace string, labels map[string]string) ([]kubecore.Pod, error) {
	if m.Impl.FindPods == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.FindPods(ctx, namespace, labels)
}
