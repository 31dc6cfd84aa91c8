// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/autoserve/autoserve/pkg/domain"
)

type MockServiceInterface struct {
	Impl struct {
		Register    func(context.Context, domain.Service) error
		Update      func(context.Context, domain.Service) error
		Get         func(context.Context, string) (domain.Service, error)
		List        func(context.Context) ([]domain.Service, error)
		ListEnabled func(context.Context) ([]domain.Service, error)
	}
}

func NewMockServiceInterface() *MockServiceInterface {
	return &MockServiceInterface{}
}

func (m *MockServiceInterface) Register(ctx context.Context, s domain.Service) error {
	if m.Impl.Register == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Register(ctx, s)
}

func (m *MockServiceInterface) Update(ctx context.Context, s domain.Service) error {
	if m.Impl.Update == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Update(ctx, s)
}

func (m *MockServiceInterface) Get(ctx context.Context, name string) (domain.Service, error) {
	if m.Impl.Get == nil {
		return domain.Service{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Get(ctx, name)
}

func (m *MockServiceInterface) List(ctx context.Context) ([]domain.Service, error) {
	if m.Impl.List == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.List(ctx)
}

func (m *MockServiceInterface) ListEnabled(ctx context.Context) ([]domain.Service, error) {
	if m.Impl.ListEnabled == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.ListEnabled(ctx)
}
