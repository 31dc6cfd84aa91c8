// this package provides a "mock" scaler for testing.
package mocks

import (
	"context"
	"errors"
)

type MockScaler struct {
	Impl struct {
		CurrentReplicas func(ctx context.Context, namespace string, name string) (int, error)
		Scale           func(ctx context.Context, namespace string, name string, replicas int) error
	}
}

func NewMockScaler() *MockScaler {
	return &MockScaler{}
}

func (m *MockScaler) CurrentReplicas(ctx context.Context, namespace string, name string) (int, error) {
	if m.Impl.CurrentReplicas == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.CurrentReplicas(ctx, namespace, name)
}

func (m *MockScaler) Scale(ctx context.Context, namespace string, name string, replicas int) error {
	if m.Impl.Scale == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Scale(ctx, namespace, name, replicas)
}
