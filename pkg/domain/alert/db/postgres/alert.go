package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	"github.com/autoserve/autoserve/pkg/domain"
	adb "github.com/autoserve/autoserve/pkg/domain/alert/db"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	"github.com/jackc/pgx/v4"
)

type pgAlert struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) adb.Interface {
	return &pgAlert{pool: pool}
}

func (p *pgAlert) Fire(ctx context.Context, a domain.Alert) (domain.Alert, bool, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return domain.Alert{}, false, err
	}
	defer tx.Rollback(ctx)

	// an active alert of the same service and type absorbs the new one,
	// taking over its latest value, severity and message
	existing := tx.QueryRow(
		ctx,
		`
		select "id" from "alerts"
		where "service_name" = $1 and "type" = $2 and "status" = 'active'
		limit 1 for update
		`,
		a.ServiceName, string(a.Type),
	)
	var foundId int
	err = existing.Scan(&foundId)
	if err == nil {
		refreshed := tx.QueryRow(
			ctx,
			`
			update "alerts"
			set "severity" = $2, "value" = $3, "message" = $4
			where "id" = $1
			returning `+columns,
			foundId, string(a.Severity), a.Value, a.Message,
		)
		found, err := scan(refreshed)
		if err != nil {
			return domain.Alert{}, false, err
		}
		return found, false, tx.Commit(ctx)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Alert{}, false, err
	}

	row := tx.QueryRow(
		ctx,
		`
		insert into "alerts"
			("service_name", "type", "severity", "value", "threshold",
			"message", "status", "created_at")
		values ($1, $2, $3, $4, $5, $6, 'active', $7)
		returning `+columns,
		a.ServiceName, string(a.Type), string(a.Severity), a.Value, a.Threshold,
		a.Message, a.CreatedAt,
	)
	created, err := scan(row)
	if err != nil {
		return domain.Alert{}, false, err
	}

	return created, true, tx.Commit(ctx)
}

func (p *pgAlert) Resolve(ctx context.Context, id int, at time.Time) (domain.Alert, error) {
	row := p.pool.QueryRow(
		ctx,
		`
		update "alerts" set "status" = 'resolved', "resolved_at" = $2
		where "id" = $1 and "status" = 'active'
		returning `+columns,
		id, at,
	)
	a, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Alert{}, kerr.Missing{Table: "alerts", Identity: fmt.Sprint(id)}
	}
	return a, err
}

func (p *pgAlert) ResolveByType(ctx context.Context, service string, t domain.AlertType, at time.Time) ([]domain.Alert, error) {
	rows, err := p.pool.Query(
		ctx,
		`
		update "alerts" set "status" = 'resolved', "resolved_at" = $3
		where "service_name" = $1 and "type" = $2 and "status" = 'active'
		returning `+columns,
		service, string(t), at,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (p *pgAlert) List(ctx context.Context, status domain.AlertStatus) ([]domain.Alert, error) {
	rows, err := p.pool.Query(
		ctx,
		`
		select `+columns+` from "alerts"
		where ($1 = '' or "status" = $1)
		order by "created_at" desc
		`,
		string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (p *pgAlert) Expire(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.pool.Exec(
		ctx,
		`delete from "alerts" where "status" = 'resolved' and "created_at" < $1`,
		before,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const columns = `"id", "service_name", "type", "severity", "value", "threshold",
	"message", "status", "created_at", "resolved_at"`

func scan(row pgx.Row) (domain.Alert, error) {
	var a domain.Alert
	var atype, severity, status string
	if err := row.Scan(
		&a.ID, &a.ServiceName, &atype, &severity, &a.Value, &a.Threshold,
		&a.Message, &status, &a.CreatedAt, &a.ResolvedAt,
	); err != nil {
		return domain.Alert{}, err
	}
	a.Type = domain.AlertType(atype)
	a.Severity = domain.AlertSeverity(severity)
	a.Status = domain.AlertStatus(status)
	return a, nil
}

func scanAll(rows pgx.Rows) ([]domain.Alert, error) {
	alerts := []domain.Alert{}
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return alerts, nil
}
