package model

import (
	"github.com/autoserve/autoserve/pkg/domain/model/db"
)

type Interface interface {
	Database() db.Interface
}

type Model struct {
	db db.Interface
}

func New(dbm db.Interface) Interface {
	return &Model{db: dbm}
}

func (m *Model) Database() db.Interface {
	return m.db
}
