package db

import (
	"context"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

type Interface interface {
	// RecordEvent stores a scaling decision and returns its id.
	RecordEvent(ctx context.Context, e domain.ScalingEvent) (int, error)

	// Events returns recent events, newest first.
	//
	// With service = "", events of all services are returned.
	// limit <= 0 means no limit.
	Events(ctx context.Context, service string, limit int) ([]domain.ScalingEvent, error)

	// LastExecuted returns when the service was last actually scaled.
	// nil means it never was.
	LastExecuted(ctx context.Context, service string) (*time.Time, error)

	// ExecutedSince returns executed prediction-triggered events of the
	// service created at or after since, newest first.
	ExecutedSince(ctx context.Context, service string, since time.Time) ([]domain.ScalingEvent, error)

	// Expire drops events created before the deadline.
	// Returns how many events were dropped.
	Expire(ctx context.Context, before time.Time) (int64, error)
}
