// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

type MockMetricInterface struct {
	Impl struct {
		Record func(context.Context, domain.MetricSnapshot, int) error
		Window func(context.Context, string, time.Time) ([]domain.MetricRecord, error)
		Expire func(context.Context, time.Time) (int64, error)
	}
}

func NewMockMetricInterface() *MockMetricInterface {
	return &MockMetricInterface{}
}

func (m *MockMetricInterface) Record(ctx context.Context, s domain.MetricSnapshot, replicas int) error {
	if m.Impl.Record == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Record(ctx, s, replicas)
}

func (m *MockMetricInterface) Window(ctx context.Context, service string, since time.Time) ([]domain.MetricRecord, error) {
	if m.Impl.Window == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Window(ctx, service, since)
}

func (m *MockMetricInterface) Expire(ctx context.Context, before time.Time) (int64, error) {
	if m.Impl.Expire == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Expire(ctx, before)
}
