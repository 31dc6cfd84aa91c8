package db

import (
	"context"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

type Interface interface {
	// Fire opens an alert unless one of the same service and type
	// is already active.
	//
	// Returns the stored alert and whether it was newly created.
	// When an alert is already active, the existing one is returned.
	Fire(ctx context.Context, a domain.Alert) (domain.Alert, bool, error)

	// Resolve closes the alert with id.
	//
	// When no active alert with the id exists, it returns error wrapping
	// kerr.ErrMissing.
	Resolve(ctx context.Context, id int, at time.Time) (domain.Alert, error)

	// ResolveByType closes all active alerts of the service and type.
	// Returns the alerts it closed.
	ResolveByType(ctx context.Context, service string, t domain.AlertType, at time.Time) ([]domain.Alert, error)

	// List returns alerts with the status, newest first.
	// With status = "", all alerts are returned.
	List(ctx context.Context, status domain.AlertStatus) ([]domain.Alert, error)

	// Expire drops resolved alerts created before the deadline.
	// Returns how many alerts were dropped.
	Expire(ctx context.Context, before time.Time) (int64, error)
}
