// this package provides a "mock" pod killer for testing.
package mocks

import (
	"context"
	"errors"
)

type MockChaosInterface struct {
	Impl struct {
		Victims func(ctx context.Context, namespace string, service string) ([]string, error)
		Kill    func(ctx context.Context, namespace string, pod string) error
	}
}

func NewMockChaosInterface() *MockChaosInterface {
	return &MockChaosInterface{}
}

func (m *MockChaosInterface) Victims(ctx context.Context, namespace string, service string) ([]string, error) {
	if m.Impl.Victims == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Victims(ctx, namespace, service)
}

func (m *MockChaosInterface) Kill(ctx context.Context, namespace string, pod string) error {
	if m.Impl.Kill == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Kill(ctx, namespace, pod)
}
