package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

type MockSource struct {
	Impl struct {
		Snapshot func(ctx context.Context, service string, ts time.Time) (domain.MetricSnapshot, error)
	}
}

func NewMockSource() *MockSource {
	return &MockSource{}
}

func (m *MockSource) Snapshot(ctx context.Context, service string, ts time.Time) (domain.MetricSnapshot, error) {
	if m.Impl.Snapshot == nil {
		return domain.MetricSnapshot{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Snapshot(ctx, service, ts)
}
