package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	kpoolmock "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool/mock"
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/domain/alert/db/postgres"
	"github.com/jackc/pgx/v4"
)

func TestFire(t *testing.T) {
	// fills scan destinations in the order of the alert column list.
	fill := func(a domain.Alert) func(dest ...interface{}) error {
		return func(dest ...interface{}) error {
			*(dest[0].(*int)) = a.ID
			*(dest[1].(*string)) = a.ServiceName
			*(dest[2].(*string)) = string(a.Type)
			*(dest[3].(*string)) = string(a.Severity)
			*(dest[4].(*float64)) = a.Value
			*(dest[5].(*float64)) = a.Threshold
			*(dest[6].(*string)) = a.Message
			*(dest[7].(*string)) = string(a.Status)
			*(dest[8].(*time.Time)) = a.CreatedAt
			*(dest[9].(**time.Time)) = a.ResolvedAt
			return nil
		}
	}

	t.Run("re-firing an active alert refreshes it in place", func(t *testing.T) {
		firedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
		stale := domain.Alert{
			ID: 42, ServiceName: "fake-service", Type: domain.AlertCPUHigh,
			Severity: domain.SeverityHigh, Value: 85, Threshold: 80,
			Message: "cpu at 85%", Status: domain.AlertActive,
			CreatedAt: firedAt.Add(-10 * time.Minute),
		}

		updates := []struct {
			sql  string
			args []interface{}
		}{}

		tx := kpoolmock.NewMockTx()
		tx.Impl.QueryRow = func(ctx context.Context, sql string, args ...interface{}) pgx.Row {
			row := kpoolmock.NewMockRow()
			switch {
			case strings.Contains(sql, "select"):
				row.Impl.Scan = func(dest ...interface{}) error {
					*(dest[0].(*int)) = stale.ID
					return nil
				}
			case strings.Contains(sql, "update"):
				updates = append(updates, struct {
					sql  string
					args []interface{}
				}{sql, args})
				refreshed := stale
				refreshed.Severity = domain.SeverityCritical
				refreshed.Value = 97
				refreshed.Message = "cpu at 97%"
				row.Impl.Scan = fill(refreshed)
			default:
				t.Errorf("unexpected query: %s", sql)
			}
			return row
		}
		committed := false
		tx.Impl.Commit = func(context.Context) error {
			committed = true
			return nil
		}

		pool := kpoolmock.NewMockPool()
		pool.Impl.Begin = func(context.Context) (kpool.Tx, error) {
			return tx, nil
		}

		testee := postgres.New(pool)
		actual, isNew, err := testee.Fire(context.Background(), domain.Alert{
			ServiceName: "fake-service", Type: domain.AlertCPUHigh,
			Severity: domain.SeverityCritical, Value: 97, Threshold: 80,
			Message: "cpu at 97%", CreatedAt: firedAt,
		})

		if isNew || err != nil {
			t.Errorf("(isNew, err) = (%v, %v), want (%v, %v)", isNew, err, false, nil)
		}
		if len(updates) != 1 {
			t.Fatalf("sent %d updates, want 1", len(updates))
		}
		u := updates[0]
		if len(u.args) != 4 ||
			u.args[0] != stale.ID || u.args[1] != string(domain.SeverityCritical) ||
			u.args[2] != 97.0 || u.args[3] != "cpu at 97%" {
			t.Errorf("unexpected update args: %+v", u.args)
		}
		if actual.ID != stale.ID || actual.Severity != domain.SeverityCritical ||
			actual.Value != 97 || actual.Message != "cpu at 97%" ||
			actual.Status != domain.AlertActive {
			t.Errorf("unexpected alert: %+v", actual)
		}
		if !committed {
			t.Error("the transaction should be committed")
		}
	})

	t.Run("the first firing inserts a new active alert", func(t *testing.T) {
		firedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
		fired := domain.Alert{
			ServiceName: "fake-service", Type: domain.AlertErrorRateHigh,
			Severity: domain.SeverityMedium, Value: 7, Threshold: 5,
			Message: "error rate at 7%", CreatedAt: firedAt,
		}

		tx := kpoolmock.NewMockTx()
		tx.Impl.QueryRow = func(ctx context.Context, sql string, args ...interface{}) pgx.Row {
			row := kpoolmock.NewMockRow()
			switch {
			case strings.Contains(sql, "select"):
				row.Impl.Scan = func(...interface{}) error {
					return pgx.ErrNoRows
				}
			case strings.Contains(sql, "insert"):
				created := fired
				created.ID = 1
				created.Status = domain.AlertActive
				row.Impl.Scan = fill(created)
			default:
				t.Errorf("unexpected query: %s", sql)
			}
			return row
		}
		committed := false
		tx.Impl.Commit = func(context.Context) error {
			committed = true
			return nil
		}

		pool := kpoolmock.NewMockPool()
		pool.Impl.Begin = func(context.Context) (kpool.Tx, error) {
			return tx, nil
		}

		testee := postgres.New(pool)
		actual, isNew, err := testee.Fire(context.Background(), fired)

		if !isNew || err != nil {
			t.Errorf("(isNew, err) = (%v, %v), want (%v, %v)", isNew, err, true, nil)
		}
		if actual.ID != 1 || actual.Status != domain.AlertActive {
			t.Errorf("unexpected alert: %+v", actual)
		}
		if !committed {
			t.Error("the transaction should be committed")
		}
	})
}
