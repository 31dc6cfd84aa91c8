package mocks

import (
	"context"
	"errors"

	"github.com/autoserve/autoserve/pkg/domain"
)

type MockNotifier struct {
	Impl struct {
		NotifyAlert    func(context.Context, domain.Alert) error
		NotifyResolved func(context.Context, domain.Alert) error
	}
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyAlert(ctx context.Context, a domain.Alert) error {
	if m.Impl.NotifyAlert == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.NotifyAlert(ctx, a)
}

func (m *MockNotifier) NotifyResolved(ctx context.Context, a domain.Alert) error {
	if m.Impl.NotifyResolved == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.NotifyResolved(ctx, a)
}
