package db

import "context"

// Migration is one applied (or applicable) schema change.
type Migration struct {
	Version int
	Name    string
}

// SchemaInterface represents a database schema.
type SchemaInterface interface {
	// Upgrade applies all pending migrations from the repository, in order.
	//
	// Returns the migrations it applied.
	Upgrade(ctx context.Context) ([]Migration, error)

	// Version returns the current version of the schema.
	// 0 means no migration has been applied yet.
	Version(ctx context.Context) (int, error)
}
