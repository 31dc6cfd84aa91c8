package db

import (
	adb "github.com/autoserve/autoserve/pkg/domain/alert/db"
	mdb "github.com/autoserve/autoserve/pkg/domain/metric/db"
	modeldb "github.com/autoserve/autoserve/pkg/domain/model/db"
	scdb "github.com/autoserve/autoserve/pkg/domain/scaling/db"
	schemadb "github.com/autoserve/autoserve/pkg/domain/schema/db"
	svcdb "github.com/autoserve/autoserve/pkg/domain/service/db"
)

// Database bundles all storage areas behind one connection pool.
type Database interface {
	Service() svcdb.Interface
	Metric() mdb.Interface
	Scaling() scdb.Interface
	Model() modeldb.Interface
	Alert() adb.Interface
	Schema() schemadb.SchemaInterface

	Close() error
}
