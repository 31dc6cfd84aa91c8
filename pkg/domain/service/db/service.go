package db

import (
	"context"

	"github.com/autoserve/autoserve/pkg/domain"
)

type Interface interface {
	// Register adds a new managed service.
	//
	// When a service with the same name exists, it returns error wrapping
	// kerr.ErrAlreadyExists.
	Register(ctx context.Context, s domain.Service) error

	// Update rewrites the replica bounds and enabled flag of a service.
	//
	// When no service with the name exists, it returns error wrapping
	// kerr.ErrMissing.
	Update(ctx context.Context, s domain.Service) error

	// Get finds a service by name.
	//
	// When no service with the name exists, it returns error wrapping
	// kerr.ErrMissing.
	Get(ctx context.Context, name string) (domain.Service, error)

	// List returns all managed services, ordered by name.
	List(ctx context.Context) ([]domain.Service, error)

	// ListEnabled returns services the scaling loop should act on.
	ListEnabled(ctx context.Context) ([]domain.Service, error)
}
