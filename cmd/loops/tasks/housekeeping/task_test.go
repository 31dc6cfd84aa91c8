package housekeeping_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/tasks/housekeeping"
	alertmock "github.com/autoserve/autoserve/pkg/domain/alert/db/mock"
	metricmock "github.com/autoserve/autoserve/pkg/domain/metric/db/mock"
	scalingmock "github.com/autoserve/autoserve/pkg/domain/scaling/db/mock"
)

func TestHousekeepingTask(t *testing.T) {
	t.Run("it expires metrics, events and alerts older than the retention", func(t *testing.T) {
		retention := 168 * time.Hour
		before := time.Now().Add(-retention)

		assertDeadline := func(actual time.Time) {
			t.Helper()
			// the deadline is computed inside the task, so allow slack
			if actual.Before(before.Add(-time.Minute)) || actual.After(before.Add(time.Minute)) {
				t.Errorf("deadline = %s, want about %s", actual, before)
			}
		}

		metricdb := metricmock.NewMockMetricInterface()
		expiredMetrics := false
		metricdb.Impl.Expire = func(ctx context.Context, deadline time.Time) (int64, error) {
			assertDeadline(deadline)
			expiredMetrics = true
			return 3, nil
		}

		scalingdb := scalingmock.NewMockScalingInterface()
		expiredEvents := false
		scalingdb.Impl.Expire = func(ctx context.Context, deadline time.Time) (int64, error) {
			assertDeadline(deadline)
			expiredEvents = true
			return 2, nil
		}

		alerts := alertmock.NewMockAlertInterface()
		expiredAlerts := false
		alerts.Impl.Expire = func(ctx context.Context, deadline time.Time) (int64, error) {
			assertDeadline(deadline)
			expiredAlerts = true
			return 0, nil
		}

		testee := housekeeping.Task(metricdb, scalingdb, alerts, retention)
		_, ok, err := testee(context.Background(), housekeeping.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
		if !expiredMetrics || !expiredEvents || !expiredAlerts {
			t.Errorf(
				"(metrics, events, alerts) = (%v, %v, %v), want all expired",
				expiredMetrics, expiredEvents, expiredAlerts,
			)
		}
	})

	t.Run("when expiring fails, it makes error", func(t *testing.T) {
		metricdb := metricmock.NewMockMetricInterface()
		expectedError := errors.New("fake error")
		metricdb.Impl.Expire = func(context.Context, time.Time) (int64, error) {
			return 0, expectedError
		}

		scalingdb := scalingmock.NewMockScalingInterface()
		alerts := alertmock.NewMockAlertInterface()

		testee := housekeeping.Task(metricdb, scalingdb, alerts, time.Hour)
		_, ok, err := testee(context.Background(), housekeeping.Seed())

		if ok || !errors.Is(err, expectedError) {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, expectedError)
		}
	})
}
