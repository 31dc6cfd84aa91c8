package postgres

import (
	"context"
	"fmt"
	"time"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	adb "github.com/autoserve/autoserve/pkg/domain/alert/db"
	kpgalert "github.com/autoserve/autoserve/pkg/domain/alert/db/postgres"
	dbInterface "github.com/autoserve/autoserve/pkg/domain/autoserve/db"
	mdb "github.com/autoserve/autoserve/pkg/domain/metric/db"
	kpgmetric "github.com/autoserve/autoserve/pkg/domain/metric/db/postgres"
	modeldb "github.com/autoserve/autoserve/pkg/domain/model/db"
	kpgmodel "github.com/autoserve/autoserve/pkg/domain/model/db/postgres"
	scdb "github.com/autoserve/autoserve/pkg/domain/scaling/db"
	kpgscaling "github.com/autoserve/autoserve/pkg/domain/scaling/db/postgres"
	schemadb "github.com/autoserve/autoserve/pkg/domain/schema/db"
	kpgschema "github.com/autoserve/autoserve/pkg/domain/schema/db/postgres"
	svcdb "github.com/autoserve/autoserve/pkg/domain/service/db"
	kpgservice "github.com/autoserve/autoserve/pkg/domain/service/db/postgres"
	"github.com/autoserve/autoserve/pkg/utils/retry"
	"github.com/autoserve/autoserve/pkg/xerrors"
	"github.com/jackc/pgx/v4/pgxpool"
)

type autoserveDBPostgres struct {
	pool    *pgxpool.Pool
	service svcdb.Interface
	metric  mdb.Interface
	scaling scdb.Interface
	model   modeldb.Interface
	alert   adb.Interface
	schema  schemadb.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.Database, error) {
	// the database may come up after us. keep trying until ctx expires.
	pool, err := retry.Blocking(ctx, retry.StaticBackoff(1*time.Second), func() (*pgxpool.Pool, error) {
		p, err := pgxpool.Connect(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", retry.ErrRetry, err)
		}
		return p, nil
	})
	if err != nil {
		return nil, xerrors.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	var schema schemadb.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &autoserveDBPostgres{
		pool:    pool,
		service: kpgservice.New(p),
		metric:  kpgmetric.New(p),
		scaling: kpgscaling.New(p),
		model:   kpgmodel.New(p),
		alert:   kpgalert.New(p),
		schema:  schema,
	}, nil
}

func (a *autoserveDBPostgres) Service() svcdb.Interface {
	return a.service
}

func (a *autoserveDBPostgres) Metric() mdb.Interface {
	return a.metric
}

func (a *autoserveDBPostgres) Scaling() scdb.Interface {
	return a.scaling
}

func (a *autoserveDBPostgres) Model() modeldb.Interface {
	return a.model
}

func (a *autoserveDBPostgres) Alert() adb.Interface {
	return a.alert
}

func (a *autoserveDBPostgres) Schema() schemadb.SchemaInterface {
	return a.schema
}

func (a *autoserveDBPostgres) Close() error {
	a.pool.Close()
	return nil
}
