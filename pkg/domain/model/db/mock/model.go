// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/autoserve/autoserve/pkg/domain"
)

type MockModelInterface struct {
	Impl struct {
		Save           func(context.Context, domain.ScalingModel) (domain.ScalingModel, error)
		Active         func(context.Context) (domain.ScalingModel, error)
		Activate       func(context.Context, int) error
		UpdateAccuracy func(context.Context, int, float64) error
		List           func(context.Context) ([]domain.ScalingModel, error)
	}
}

func NewMockModelInterface() *MockModelInterface {
	return &MockModelInterface{}
}

func (m *MockModelInterface) Save(ctx context.Context, model domain.ScalingModel) (domain.ScalingModel, error) {
	if m.Impl.Save == nil {
		return domain.ScalingModel{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Save(ctx, model)
}

func (m *MockModelInterface) Active(ctx context.Context) (domain.ScalingModel, error) {
	if m.Impl.Active == nil {
		return domain.ScalingModel{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Active(ctx)
}

func (m *MockModelInterface) Activate(ctx context.Context, id int) error {
	if m.Impl.Activate == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Activate(ctx, id)
}

func (m *MockModelInterface) UpdateAccuracy(ctx context.Context, id int, accuracy float64) error {
	if m.Impl.UpdateAccuracy == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.UpdateAccuracy(ctx, id, accuracy)
}

func (m *MockModelInterface) List(ctx context.Context) ([]domain.ScalingModel, error) {
	if m.Impl.List == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.List(ctx)
}
