package scaling

import (
	"github.com/autoserve/autoserve/pkg/domain/scaling/db"
	"github.com/autoserve/autoserve/pkg/domain/scaling/k8s"
)

type Interface interface {
	Database() db.Interface
	Cluster() k8s.Scaler
}

type Scaling struct {
	db      db.Interface
	cluster k8s.Scaler
}

func New(dbs db.Interface, cluster k8s.Scaler) Interface {
	return &Scaling{db: dbs, cluster: cluster}
}

func (s *Scaling) Database() db.Interface {
	return s.db
}

func (s *Scaling) Cluster() k8s.Scaler {
	return s.cluster
}
