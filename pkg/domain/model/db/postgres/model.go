package postgres

import (
	"context"
	"errors"
	"fmt"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	mdb "github.com/autoserve/autoserve/pkg/domain/model/db"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

type pgModel struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) mdb.Interface {
	return &pgModel{pool: pool}
}

func (p *pgModel) Save(ctx context.Context, m domain.ScalingModel) (domain.ScalingModel, error) {
	weights := pgtype.JSONB{}
	if err := weights.Set(m.Weights); err != nil {
		return domain.ScalingModel{}, err
	}

	err := p.pool.QueryRow(
		ctx,
		`
		insert into "ml_models"
			("name", "version", "weights", "mae", "r2", "accuracy", "active", "trained_at")
		values ($1, $2, $3, $4, $5, $6, false, $7)
		returning "id"
		`,
		m.Name, m.Version, weights, m.MAE, m.R2, m.Accuracy, m.TrainedAt,
	).Scan(&m.ID)
	if err != nil {
		return domain.ScalingModel{}, err
	}
	m.Active = false
	return m, nil
}

func (p *pgModel) Active(ctx context.Context) (domain.ScalingModel, error) {
	row := p.pool.QueryRow(
		ctx,
		`
		select "id", "name", "version", "weights", "mae", "r2", "accuracy", "active", "trained_at"
		from "ml_models" where "active" limit 1
		`,
	)
	m, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ScalingModel{}, kerr.Missing{Table: "ml_models", Identity: "(active)"}
	}
	return m, err
}

func (p *pgModel) Activate(ctx context.Context, id int) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `update "ml_models" set "active" = false where "active"`,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(
		ctx, `update "ml_models" set "active" = true where "id" = $1`, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kerr.Missing{Table: "ml_models", Identity: fmt.Sprint(id)}
	}

	return tx.Commit(ctx)
}

func (p *pgModel) UpdateAccuracy(ctx context.Context, id int, accuracy float64) error {
	tag, err := p.pool.Exec(
		ctx, `update "ml_models" set "accuracy" = $2 where "id" = $1`, id, accuracy,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kerr.Missing{Table: "ml_models", Identity: fmt.Sprint(id)}
	}
	return nil
}

func (p *pgModel) List(ctx context.Context) ([]domain.ScalingModel, error) {
	rows, err := p.pool.Query(
		ctx,
		`
		select "id", "name", "version", "weights", "mae", "r2", "accuracy", "active", "trained_at"
		from "ml_models" order by "trained_at" desc
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	models := []domain.ScalingModel{}
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models, nil
}

func scan(row pgx.Row) (domain.ScalingModel, error) {
	var m domain.ScalingModel
	weights := pgtype.JSONB{}
	if err := row.Scan(
		&m.ID, &m.Name, &m.Version, &weights, &m.MAE, &m.R2, &m.Accuracy, &m.Active, &m.TrainedAt,
	); err != nil {
		return domain.ScalingModel{}, err
	}
	if err := weights.AssignTo(&m.Weights); err != nil {
		return domain.ScalingModel{}, err
	}
	return m, nil
}
