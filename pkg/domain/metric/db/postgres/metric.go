package postgres

import (
	"context"
	"time"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	"github.com/autoserve/autoserve/pkg/domain"
	mdb "github.com/autoserve/autoserve/pkg/domain/metric/db"
)

type pgMetric struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) mdb.Interface {
	return &pgMetric{pool: pool}
}

func (p *pgMetric) Record(ctx context.Context, s domain.MetricSnapshot, replicas int) error {
	_, err := p.pool.Exec(
		ctx,
		`
		insert into "metrics"
			("service_name", "cpu_usage", "memory_usage", "request_rate",
			"response_time", "error_rate", "replicas", "taken_at")
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
		s.ServiceName, s.CPUUsage, s.MemoryUsage, s.RequestRate,
		s.ResponseTime, s.ErrorRate, replicas, s.TakenAt,
	)
	return err
}

func (p *pgMetric) Window(ctx context.Context, service string, since time.Time) ([]domain.MetricRecord, error) {
	rows, err := p.pool.Query(
		ctx,
		`
		select "service_name", "cpu_usage", "memory_usage", "request_rate",
			"response_time", "error_rate", "replicas", "taken_at"
		from "metrics"
		where "service_name" = $1 and $2 <= "taken_at"
		order by "taken_at"
		`,
		service, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.MetricRecord{}
	for rows.Next() {
		var r domain.MetricRecord
		s := &r.Snapshot
		if err := rows.Scan(
			&s.ServiceName, &s.CPUUsage, &s.MemoryUsage, &s.RequestRate,
			&s.ResponseTime, &s.ErrorRate, &r.Replicas, &s.TakenAt,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (p *pgMetric) Expire(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.pool.Exec(
		ctx,
		`delete from "metrics" where "taken_at" < $1`,
		before,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
