package metric

import (
	"github.com/autoserve/autoserve/pkg/domain/metric/db"
)

type Interface interface {
	Database() db.Interface
}

type Metric struct {
	db db.Interface
}

func New(dbm db.Interface) Interface {
	return &Metric{db: dbm}
}

func (m *Metric) Database() db.Interface {
	return m.db
}
