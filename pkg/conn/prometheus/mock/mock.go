// this package provides a "mock" Prometheus querier for testing.
package mocks

import (
	"context"
	"errors"
	"time"

	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

type MockQuerier struct {
	Impl struct {
		Query func(ctx context.Context, query string, ts time.Time) (model.Value, v1.Warnings, error)
	}
}

func NewMockQuerier() *MockQuerier {
	return &MockQuerier{}
}

func (m *MockQuerier) Query(ctx context.Context, query string, ts time.Time, _ ...v1.Option) (model.Value, v1.Warnings, error) {
	if m.Impl.Query == nil {
		return nil, nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Query(ctx, query, ts)
}
