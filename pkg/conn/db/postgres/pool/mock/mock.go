// this package provides a "mock" connection pool for testing SQL layers
// without a live database.
package mocks

import (
	"context"
	"errors"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type MockRow struct {
	Impl struct {
		Scan func(dest ...interface{}) error
	}
}

var _ pgx.Row = &MockRow{}

func NewMockRow() *MockRow {
	return &MockRow{}
}

func (m *MockRow) Scan(dest ...interface{}) error {
	if m.Impl.Scan == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Scan(dest...)
}

type MockTx struct {
	Impl struct {
		Exec     func(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
		Query    func(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
		QueryRow func(ctx context.Context, sql string, args ...interface{}) pgx.Row
		Begin    func(ctx context.Context) (kpool.Tx, error)
		Commit   func(ctx context.Context) error
		Rollback func(ctx context.Context) error
	}
}

var _ kpool.Tx = &MockTx{}

func NewMockTx() *MockTx {
	return &MockTx{}
}

func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	if m.Impl.Exec == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Exec(ctx, sql, arguments...)
}

func (m *MockTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if m.Impl.Query == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Query(ctx, sql, args...)
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	if m.Impl.QueryRow == nil {
		row := NewMockRow()
		row.Impl.Scan = func(...interface{}) error {
			return errors.New("[MOCK] not implemented")
		}
		return row
	}
	return m.Impl.QueryRow(ctx, sql, args...)
}

func (m *MockTx) Begin(ctx context.Context) (kpool.Tx, error) {
	if m.Impl.Begin == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Begin(ctx)
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.Impl.Commit == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Commit(ctx)
}

// Rollback is a no-op unless set. deferred rollbacks after a commit
// should not make a test fail.
func (m *MockTx) Rollback(ctx context.Context) error {
	if m.Impl.Rollback == nil {
		return nil
	}
	return m.Impl.Rollback(ctx)
}

func (m *MockTx) Conn() *pgx.Conn {
	return nil
}

type MockPool struct {
	Impl struct {
		Exec     func(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
		Query    func(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
		QueryRow func(ctx context.Context, sql string, args ...interface{}) pgx.Row
		Begin    func(ctx context.Context) (kpool.Tx, error)
		BeginTx  func(ctx context.Context, txOptions pgx.TxOptions) (kpool.Tx, error)
		Ping     func(ctx context.Context) error
	}
}

var _ kpool.Pool = &MockPool{}

func NewMockPool() *MockPool {
	return &MockPool{}
}

func (m *MockPool) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	if m.Impl.Exec == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Exec(ctx, sql, arguments...)
}

func (m *MockPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if m.Impl.Query == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Query(ctx, sql, args...)
}

func (m *MockPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	if m.Impl.QueryRow == nil {
		row := NewMockRow()
		row.Impl.Scan = func(...interface{}) error {
			return errors.New("[MOCK] not implemented")
		}
		return row
	}
	return m.Impl.QueryRow(ctx, sql, args...)
}

func (m *MockPool) Begin(ctx context.Context) (kpool.Tx, error) {
	if m.Impl.Begin == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Begin(ctx)
}

func (m *MockPool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (kpool.Tx, error) {
	if m.Impl.BeginTx == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.BeginTx(ctx, txOptions)
}

func (m *MockPool) Acquire(ctx context.Context) (kpool.Conn, error) {
	return nil, errors.New("[MOCK] not implemented")
}

func (m *MockPool) AcquireAllIdle(ctx context.Context) []kpool.Conn {
	return nil
}

func (m *MockPool) Config() *pgxpool.Config {
	return nil
}

func (m *MockPool) Ping(ctx context.Context) error {
	if m.Impl.Ping == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Ping(ctx)
}
