package housekeeping

import (
	"context"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/recurring"
	kdbalert "github.com/autoserve/autoserve/pkg/domain/alert/db"
	kdbmetric "github.com/autoserve/autoserve/pkg/domain/metric/db"
	kdbscaling "github.com/autoserve/autoserve/pkg/domain/scaling/db"
)

// initial value for task
func Seed() any {
	return nil
}

// return:
//
// - task: drop metric records, scaling events and resolved alerts
// older than the retention window.
func Task(
	metricdb kdbmetric.Interface,
	scalingdb kdbscaling.Interface,
	alerts kdbalert.Interface,
	retention time.Duration,
) recurring.Task[any] {
	return func(ctx context.Context, value any) (any, bool, error) {
		deadline := time.Now().Add(-retention)

		if _, err := metricdb.Expire(ctx, deadline); err != nil {
			return value, false, err
		}
		if _, err := scalingdb.Expire(ctx, deadline); err != nil {
			return value, false, err
		}
		if _, err := alerts.Expire(ctx, deadline); err != nil {
			return value, false, err
		}
		return value, false, nil
	}
}
