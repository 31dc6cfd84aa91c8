package postgres

import (
	"context"
	"errors"
	"time"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	"github.com/autoserve/autoserve/pkg/domain"
	sdb "github.com/autoserve/autoserve/pkg/domain/scaling/db"
	"github.com/jackc/pgx/v4"
)

type pgScaling struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) sdb.Interface {
	return &pgScaling{pool: pool}
}

func (p *pgScaling) RecordEvent(ctx context.Context, e domain.ScalingEvent) (int, error) {
	var id int
	err := p.pool.QueryRow(
		ctx,
		`
		insert into "scaling_events"
			("service_name", "action", "previous_replicas", "new_replicas",
			"trigger", "confidence", "reason", "executed", "created_at")
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		returning "id"
		`,
		e.ServiceName, string(e.Action), e.PreviousReplicas, e.NewReplicas,
		string(e.Trigger), e.Confidence, e.Reason, e.Executed, e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (p *pgScaling) Events(ctx context.Context, service string, limit int) ([]domain.ScalingEvent, error) {
	sql := `
		select "id", "service_name", "action", "previous_replicas", "new_replicas",
			"trigger", "confidence", "reason", "executed", "created_at"
		from "scaling_events"
		where ($1 = '' or "service_name" = $1)
		order by "created_at" desc
	`
	args := []interface{}{service}
	if 0 < limit {
		sql += ` limit $2`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.ScalingEvent{}
	for rows.Next() {
		var e domain.ScalingEvent
		var action, trigger string
		if err := rows.Scan(
			&e.ID, &e.ServiceName, &action, &e.PreviousReplicas, &e.NewReplicas,
			&trigger, &e.Confidence, &e.Reason, &e.Executed, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Action = domain.ScalingAction(action)
		e.Trigger = domain.ScalingTrigger(trigger)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (p *pgScaling) ExecutedSince(ctx context.Context, service string, since time.Time) ([]domain.ScalingEvent, error) {
	rows, err := p.pool.Query(
		ctx,
		`
		select "id", "service_name", "action", "previous_replicas", "new_replicas",
			"trigger", "confidence", "reason", "executed", "created_at"
		from "scaling_events"
		where "service_name" = $1 and "executed"
			and "trigger" = 'ml_prediction' and $2 <= "created_at"
		order by "created_at" desc
		`,
		service, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.ScalingEvent{}
	for rows.Next() {
		var e domain.ScalingEvent
		var action, trigger string
		if err := rows.Scan(
			&e.ID, &e.ServiceName, &action, &e.PreviousReplicas, &e.NewReplicas,
			&trigger, &e.Confidence, &e.Reason, &e.Executed, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Action = domain.ScalingAction(action)
		e.Trigger = domain.ScalingTrigger(trigger)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (p *pgScaling) LastExecuted(ctx context.Context, service string) (*time.Time, error) {
	var at time.Time
	err := p.pool.QueryRow(
		ctx,
		`
		select "created_at" from "scaling_events"
		where "service_name" = $1 and "executed"
		order by "created_at" desc limit 1
		`,
		service,
	).Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (p *pgScaling) Expire(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.pool.Exec(
		ctx,
		`delete from "scaling_events" where "created_at" < $1`,
		before,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
