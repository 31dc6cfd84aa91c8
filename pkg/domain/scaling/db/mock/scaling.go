// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

type MockScalingInterface struct {
	Impl struct {
		RecordEvent   func(context.Context, domain.ScalingEvent) (int, error)
		Events        func(context.Context, string, int) ([]domain.ScalingEvent, error)
		LastExecuted  func(context.Context, string) (*time.Time, error)
		ExecutedSince func(context.Context, string, time.Time) ([]domain.ScalingEvent, error)
		Expire        func(context.Context, time.Time) (int64, error)
	}
}

func NewMockScalingInterface() *MockScalingInterface {
	return &MockScalingInterface{}
}

func (m *MockScalingInterface) RecordEvent(ctx context.Context, e domain.ScalingEvent) (int, error) {
	if m.Impl.RecordEvent == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.RecordEvent(ctx, e)
}

func (m *MockScalingInterface) Events(ctx context.Context, service string, limit int) ([]domain.ScalingEvent, error) {
	if m.Impl.Events == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Events(ctx, service, limit)
}

func (m *MockScalingInterface) LastExecuted(ctx context.Context, service string) (*time.Time, error) {
	if m.Impl.LastExecuted == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.LastExecuted(ctx, service)
}

func (m *MockScalingInterface) ExecutedSince(ctx context.Context, service string, since time.Time) ([]domain.ScalingEvent, error) {
	if m.Impl.ExecutedSince == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.ExecutedSince(ctx, service, since)
}

func (m *MockScalingInterface) Expire(ctx context.Context, before time.Time) (int64, error) {
	if m.Impl.Expire == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Expire(ctx, before)
}
