package postgres

import (
	"context"
	"errors"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	sdb "github.com/autoserve/autoserve/pkg/domain/service/db"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
)

type pgService struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) sdb.Interface {
	return &pgService{pool: pool}
}

func (p *pgService) Register(ctx context.Context, s domain.Service) error {
	_, err := p.pool.Exec(
		ctx,
		`
		insert into "services"
			("name", "namespace", "min_replicas", "max_replicas", "enabled")
		values ($1, $2, $3, $4, $5)
		`,
		s.Name, s.Namespace, s.MinReplicas, s.MaxReplicas, s.Enabled,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return kerr.AlreadyExists{Table: "services", Identity: s.Name}
		}
		return err
	}
	return nil
}

func (p *pgService) Update(ctx context.Context, s domain.Service) error {
	tag, err := p.pool.Exec(
		ctx,
		`
		update "services"
		set "min_replicas" = $2, "max_replicas" = $3, "enabled" = $4,
			"updated_at" = now()
		where "name" = $1
		`,
		s.Name, s.MinReplicas, s.MaxReplicas, s.Enabled,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kerr.Missing{Table: "services", Identity: s.Name}
	}
	return nil
}

func (p *pgService) Get(ctx context.Context, name string) (domain.Service, error) {
	var s domain.Service
	err := p.pool.QueryRow(
		ctx,
		`
		select "name", "namespace", "min_replicas", "max_replicas", "enabled",
			"created_at", "updated_at"
		from "services" where "name" = $1
		`,
		name,
	).Scan(
		&s.Name, &s.Namespace, &s.MinReplicas, &s.MaxReplicas, &s.Enabled,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Service{}, kerr.Missing{Table: "services", Identity: name}
	}
	if err != nil {
		return domain.Service{}, err
	}
	return s, nil
}

func (p *pgService) List(ctx context.Context) ([]domain.Service, error) {
	return p.list(ctx, `
		select "name", "namespace", "min_replicas", "max_replicas", "enabled",
			"created_at", "updated_at"
		from "services" order by "name"
	`)
}

func (p *pgService) ListEnabled(ctx context.Context) ([]domain.Service, error) {
	return p.list(ctx, `
		select "name", "namespace", "min_replicas", "max_replicas", "enabled",
			"created_at", "updated_at"
		from "services" where "enabled" order by "name"
	`)
}

func (p *pgService) list(ctx context.Context, sql string) ([]domain.Service, error) {
	rows, err := p.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(
			&s.Name, &s.Namespace, &s.MinReplicas, &s.MaxReplicas, &s.Enabled,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}
