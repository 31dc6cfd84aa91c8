package service

import (
	"github.com/autoserve/autoserve/pkg/domain/service/db"
)

type Interface interface {
	Database() db.Interface
}

type Service struct {
	db db.Interface
}

func New(dbs db.Interface) Interface {
	return &Service{db: dbs}
}

func (s *Service) Database() db.Interface {
	return s.db
}
