package postgres

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"time"

	kpool "github.com/autoserve/autoserve/pkg/conn/db/postgres/pool"
	sdb "github.com/autoserve/autoserve/pkg/domain/schema/db"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

type pgSchema struct {
	pool             kpool.Pool
	schemaRepository string
}

// New creates a new Schema.
//
// # Args
//
// - schemaRepository: The path to the directory holding migration files,
// named like `001_create_services.sql`.
func New(pool kpool.Pool, schemaRepository string) sdb.SchemaInterface {
	return &pgSchema{
		pool:             pool,
		schemaRepository: schemaRepository,
	}
}

// migration file names: version, underscore, description.
var migrationName = regexp.MustCompile(`^(\d+)_(.+)\.sql$`)

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	var version *int
	if err := s.pool.QueryRow(
		ctx, `select max("version") from "schema_migrations"`,
	).Scan(&version); err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) {
			if pgerr.Code == pgerrcode.UndefinedTable {
				return 0, nil
			}
		}
		return -1, err
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}

func (s *pgSchema) Upgrade(ctx context.Context) ([]sdb.Migration, error) {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	pending, err := s.migrations()
	if err != nil {
		return nil, err
	}

	currentVersion, err := s.Version(ctx)
	if err != nil {
		return nil, err
	}

	applied := []sdb.Migration{}
	for _, m := range pending {
		if m.Version <= currentVersion {
			continue
		}

		// each migration commits on its own, so a failure
		// leaves earlier migrations in place
		if err := s.apply(ctx, m); err != nil {
			return applied, fmt.Errorf(
				"migration %03d_%s failed: %w", m.Version, m.Name, err,
			)
		}
		applied = append(applied, m.Migration)
	}

	return applied, nil
}

type migrationFile struct {
	sdb.Migration
	Path string
}

func (s *pgSchema) apply(ctx context.Context, m migrationFile) error {
	query, err := os.ReadFile(m.Path)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(query)); err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		`insert into "schema_migrations" ("version", "name", "applied_at") values ($1, $2, $3)`,
		m.Version, m.Name, time.Now(),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *pgSchema) ensureMigrationsTable(ctx context.Context) error {
	_, err := s.pool.Exec(
		ctx,
		`
		create table if not exists "schema_migrations" (
			"version" integer unique not null,
			"name" varchar(255) not null,
			"applied_at" timestamp with time zone not null default now()
		)
		`,
	)
	return err
}

// Null is a schema without a repository. Upgrade always fails.
func Null() sdb.SchemaInterface {
	return nullSchema{}
}

type nullSchema struct{}

func (nullSchema) Upgrade(ctx context.Context) ([]sdb.Migration, error) {
	return nil, errors.New("no schema repository available")
}

func (nullSchema) Version(ctx context.Context) (int, error) {
	return -1, nil
}

// migrations lists the repository content, sorted by version number.
func (s *pgSchema) migrations() ([]migrationFile, error) {
	dir, err := os.ReadDir(s.schemaRepository)
	if err != nil {
		return nil, err
	}

	found := make([]migrationFile, 0, len(dir))
	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		match := migrationName.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		v, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		found = append(found, migrationFile{
			Migration: sdb.Migration{Version: v, Name: match[2]},
			Path:      filepath.Join(s.schemaRepository, entry.Name()),
		})
	}
	slices.SortFunc(
		found,
		func(i, j migrationFile) int { return cmp.Compare(i.Version, j.Version) },
	)

	return found, nil
}
