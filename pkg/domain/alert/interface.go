package alert

import (
	"github.com/autoserve/autoserve/pkg/domain/alert/db"
)

type Interface interface {
	Database() db.Interface
}

type Alert struct {
	db db.Interface
}

func New(dba db.Interface) Interface {
	return &Alert{db: dba}
}

func (a *Alert) Database() db.Interface {
	return a.db
}
