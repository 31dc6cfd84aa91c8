package alerting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/tasks/alerting"
	"github.com/autoserve/autoserve/pkg/domain"
	alertmock "github.com/autoserve/autoserve/pkg/domain/alert/db/mock"
	servicemock "github.com/autoserve/autoserve/pkg/domain/service/db/mock"
	sourcemock "github.com/autoserve/autoserve/pkg/metrics/mock"
	notifymock "github.com/autoserve/autoserve/pkg/notify/mock"
)

func TestAlertingTask(t *testing.T) {
	theService := domain.Service{
		Name: "fake-service", Namespace: "fake-ns",
		MinReplicas: 1, MaxReplicas: 10, Enabled: true,
	}
	thresholds := alerting.Thresholds{
		CPUHigh: 80, MemoryHigh: 85, ErrorRateHigh: 5,
	}

	newMocks := func(snapshot domain.MetricSnapshot) (
		*servicemock.MockServiceInterface,
		*alertmock.MockAlertInterface,
		*sourcemock.MockSource,
		*notifymock.MockNotifier,
	) {
		services := servicemock.NewMockServiceInterface()
		services.Impl.ListEnabled = func(context.Context) ([]domain.Service, error) {
			return []domain.Service{theService}, nil
		}

		source := sourcemock.NewMockSource()
		source.Impl.Snapshot = func(ctx context.Context, service string, ts time.Time) (domain.MetricSnapshot, error) {
			s := snapshot
			s.ServiceName = service
			s.TakenAt = ts
			return s, nil
		}

		alerts := alertmock.NewMockAlertInterface()
		notifier := notifymock.NewMockNotifier()
		return services, alerts, source, notifier
	}

	t.Run("when a metric breaches its threshold, it fires an alert and notifies", func(t *testing.T) {
		services, alerts, source, notifier := newMocks(domain.MetricSnapshot{
			CPUUsage: 85, MemoryUsage: 50, ErrorRate: 0,
		})

		fired := []domain.Alert{}
		alerts.Impl.Fire = func(ctx context.Context, a domain.Alert) (domain.Alert, bool, error) {
			a.ID = len(fired) + 1
			fired = append(fired, a)
			return a, true, nil
		}
		alerts.Impl.ResolveByType = func(context.Context, string, domain.AlertType, time.Time) ([]domain.Alert, error) {
			return nil, nil
		}

		notified := []domain.Alert{}
		notifier.Impl.NotifyAlert = func(ctx context.Context, a domain.Alert) error {
			notified = append(notified, a)
			return nil
		}

		testee := alerting.Task(services, alerts, source, notifier, thresholds)
		_, ok, err := testee(context.Background(), alerting.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
		if len(fired) != 1 {
			t.Fatalf("fired %d alerts, want 1", len(fired))
		}
		a := fired[0]
		if a.Type != domain.AlertCPUHigh || a.Severity != domain.SeverityMedium ||
			a.ServiceName != theService.Name || a.Value != 85 || a.Threshold != 80 {
			t.Errorf("unexpected alert: %+v", a)
		}
		if len(notified) != 1 || notified[0].ID != 1 {
			t.Errorf("unexpected notifications: %+v", notified)
		}
	})

	t.Run("severities escalate when metrics go far over their thresholds", func(t *testing.T) {
		services, alerts, source, notifier := newMocks(domain.MetricSnapshot{
			CPUUsage: 95, MemoryUsage: 97, ErrorRate: 12,
		})

		bySeverity := map[domain.AlertType]domain.AlertSeverity{}
		alerts.Impl.Fire = func(ctx context.Context, a domain.Alert) (domain.Alert, bool, error) {
			bySeverity[a.Type] = a.Severity
			return a, true, nil
		}
		notifier.Impl.NotifyAlert = func(context.Context, domain.Alert) error { return nil }

		testee := alerting.Task(services, alerts, source, notifier, thresholds)
		if _, _, err := testee(context.Background(), alerting.Seed()); err != nil {
			t.Fatal(err)
		}

		expected := map[domain.AlertType]domain.AlertSeverity{
			domain.AlertCPUHigh:       domain.SeverityHigh,
			domain.AlertMemoryHigh:    domain.SeverityHigh,
			domain.AlertErrorRateHigh: domain.SeverityCritical,
		}
		for typ, severity := range expected {
			if bySeverity[typ] != severity {
				t.Errorf("severity of %s = %s, want %s", typ, bySeverity[typ], severity)
			}
		}
	})

	t.Run("when an alert of the type is already active, it does not notify again", func(t *testing.T) {
		services, alerts, source, notifier := newMocks(domain.MetricSnapshot{
			CPUUsage: 85, MemoryUsage: 50, ErrorRate: 0,
		})

		alerts.Impl.Fire = func(ctx context.Context, a domain.Alert) (domain.Alert, bool, error) {
			return a, false, nil // already active
		}
		alerts.Impl.ResolveByType = func(context.Context, string, domain.AlertType, time.Time) ([]domain.Alert, error) {
			return nil, nil
		}
		// notifier is left unset. notifying would fail the task.

		testee := alerting.Task(services, alerts, source, notifier, thresholds)
		_, ok, err := testee(context.Background(), alerting.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
	})

	t.Run("when metrics are back under their thresholds, it resolves active alerts", func(t *testing.T) {
		services, alerts, source, notifier := newMocks(domain.MetricSnapshot{
			CPUUsage: 10, MemoryUsage: 10, ErrorRate: 0,
		})

		resolvedTypes := []domain.AlertType{}
		alerts.Impl.ResolveByType = func(ctx context.Context, service string, typ domain.AlertType, at time.Time) ([]domain.Alert, error) {
			resolvedTypes = append(resolvedTypes, typ)
			if typ == domain.AlertCPUHigh {
				return []domain.Alert{{ID: 42, ServiceName: service, Type: typ, Status: domain.AlertResolved}}, nil
			}
			return nil, nil
		}

		notified := []domain.Alert{}
		notifier.Impl.NotifyResolved = func(ctx context.Context, a domain.Alert) error {
			notified = append(notified, a)
			return nil
		}

		testee := alerting.Task(services, alerts, source, notifier, thresholds)
		_, ok, err := testee(context.Background(), alerting.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
		if len(resolvedTypes) != 3 {
			t.Errorf("resolved %d types, want 3: %v", len(resolvedTypes), resolvedTypes)
		}
		if len(notified) != 1 || notified[0].ID != 42 {
			t.Errorf("unexpected notifications: %+v", notified)
		}
	})

	t.Run("when reading metrics fails, it makes error", func(t *testing.T) {
		services, alerts, source, notifier := newMocks(domain.MetricSnapshot{})

		expectedError := errors.New("fake error")
		source.Impl.Snapshot = func(context.Context, string, time.Time) (domain.MetricSnapshot, error) {
			return domain.MetricSnapshot{}, expectedError
		}

		testee := alerting.Task(services, alerts, source, notifier, alerting.Thresholds{})
		_, ok, err := testee(context.Background(), alerting.Seed())

		if ok || !errors.Is(err, expectedError) {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, expectedError)
		}
	})
}
