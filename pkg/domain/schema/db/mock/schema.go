// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	sdb "github.com/autoserve/autoserve/pkg/domain/schema/db"
)

type MockSchemaInterface struct {
	Impl struct {
		Upgrade func(context.Context) ([]sdb.Migration, error)
		Version func(context.Context) (int, error)
	}
}

func NewMockSchemaInterface() *MockSchemaInterface {
	return &MockSchemaInterface{}
}

func (m *MockSchemaInterface) Upgrade(ctx context.Context) ([]sdb.Migration, error) {
	if m.Impl.Upgrade == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Upgrade(ctx)
}

func (m *MockSchemaInterface) Version(ctx context.Context) (int, error) {
	if m.Impl.Version == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Version(ctx)
}
