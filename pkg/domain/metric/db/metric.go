package db

import (
	"context"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

type Interface interface {
	// Record stores a snapshot with the replica count the service ran with.
	Record(ctx context.Context, snapshot domain.MetricSnapshot, replicas int) error

	// Window returns records of the service taken at or after since,
	// oldest first.
	Window(ctx context.Context, service string, since time.Time) ([]domain.MetricRecord, error)

	// Expire drops records taken before the deadline.
	// Returns how many records were dropped.
	Expire(ctx context.Context, before time.Time) (int64, error)
}
