// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

type MockAlertInterface struct {
	Impl struct {
		Fire          func(context.Context, domain.Alert) (domain.Alert, bool, error)
		Resolve       func(context.Context, int, time.Time) (domain.Alert, error)
		ResolveByType func(context.Context, string, domain.AlertType, time.Time) ([]domain.Alert, error)
		List          func(context.Context, domain.AlertStatus) ([]domain.Alert, error)
		Expire        func(context.Context, time.Time) (int64, error)
	}
}

func NewMockAlertInterface() *MockAlertInterface {
	return &MockAlertInterface{}
}

func (m *MockAlertInterface) Fire(ctx context.Context, a domain.Alert) (domain.Alert, bool, error) {
	if m.Impl.Fire == nil {
		return domain.Alert{}, false, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Fire(ctx, a)
}

func (m *MockAlertInterface) Resolve(ctx context.Context, id int, at time.Time) (domain.Alert, error) {
	if m.Impl.Resolve == nil {
		return domain.Alert{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Resolve(ctx, id, at)
}

func (m *MockAlertInterface) ResolveByType(ctx context.Context, service string, t domain.AlertType, at time.Time) ([]domain.Alert, error) {
	if m.Impl.ResolveByType == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.ResolveByType(ctx, service, t, at)
}

func (m *MockAlertInterface) List(ctx context.Context, status domain.AlertStatus) ([]domain.Alert, error) {
	if m.Impl.List == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.List(ctx, status)
}

func (m *MockAlertInterface) Expire(ctx context.Context, before time.Time) (int64, error) {
	if m.Impl.Expire == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Expire(ctx, before)
}
