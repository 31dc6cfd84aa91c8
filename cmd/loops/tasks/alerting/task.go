package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/recurring"
	"github.com/autoserve/autoserve/pkg/domain"
	kdbalert "github.com/autoserve/autoserve/pkg/domain/alert/db"
	kdbservice "github.com/autoserve/autoserve/pkg/domain/service/db"
	"github.com/autoserve/autoserve/pkg/metrics"
	"github.com/autoserve/autoserve/pkg/notify"
)

// Thresholds are the metric levels above which alerts open.
//
// The escalated severities kick in at fixed levels well above the
// configurable base thresholds.
type Thresholds struct {
	CPUHigh       float64
	MemoryHigh    float64
	ErrorRateHigh float64
}

const (
	cpuEscalation       = 90 // above this, cpu_high is high instead of medium
	memoryEscalation    = 95 // above this, memory_high is high instead of medium
	errorRateEscalation = 10 // above this, error_rate_high is critical instead of high
)

// initial value for task
func Seed() any {
	return nil
}

// return:
//
// - task: check the latest metrics of each enabled service against the
// thresholds. Breaches open alerts (deduplicated per service and type)
// and notify the webhook. Metrics back under their threshold resolve
// the matching active alerts.
func Task(
	services kdbservice.Interface,
	alerts kdbalert.Interface,
	source metrics.Source,
	notifier notify.Notifier,
	thresholds Thresholds,
) recurring.Task[any] {
	return func(ctx context.Context, value any) (any, bool, error) {
		targets, err := services.ListEnabled(ctx)
		if err != nil {
			return value, false, err
		}

		now := time.Now()
		for _, svc := range targets {
			snapshot, err := source.Snapshot(ctx, svc.Name, now)
			if err != nil {
				return value, false, err
			}

			for _, check := range []struct {
				typ       domain.AlertType
				value     float64
				threshold float64
				severity  domain.AlertSeverity
				message   string
			}{
				{
					typ: domain.AlertCPUHigh, value: snapshot.CPUUsage,
					threshold: thresholds.CPUHigh,
					severity:  escalate(snapshot.CPUUsage, cpuEscalation, domain.SeverityMedium, domain.SeverityHigh),
					message:   fmt.Sprintf("High CPU usage detected: %.1f%%", snapshot.CPUUsage),
				},
				{
					typ: domain.AlertMemoryHigh, value: snapshot.MemoryUsage,
					threshold: thresholds.MemoryHigh,
					severity:  escalate(snapshot.MemoryUsage, memoryEscalation, domain.SeverityMedium, domain.SeverityHigh),
					message:   fmt.Sprintf("High memory usage detected: %.1f%%", snapshot.MemoryUsage),
				},
				{
					typ: domain.AlertErrorRateHigh, value: snapshot.ErrorRate,
					threshold: thresholds.ErrorRateHigh,
					severity:  escalate(snapshot.ErrorRate, errorRateEscalation, domain.SeverityHigh, domain.SeverityCritical),
					message:   fmt.Sprintf("High error rate detected: %.1f%%", snapshot.ErrorRate),
				},
			} {
				if check.value > check.threshold {
					fired, isNew, err := alerts.Fire(ctx, domain.Alert{
						ServiceName: svc.Name,
						Type:        check.typ,
						Severity:    check.severity,
						Value:       check.value,
						Threshold:   check.threshold,
						Message:     check.message,
						Status:      domain.AlertActive,
						CreatedAt:   now,
					})
					if err != nil {
						return value, false, err
					}
					if isNew {
						if err := notifier.NotifyAlert(ctx, fired); err != nil {
							return value, false, err
						}
					}
					continue
				}

				resolved, err := alerts.ResolveByType(ctx, svc.Name, check.typ, now)
				if err != nil {
					return value, false, err
				}
				for _, a := range resolved {
					if err := notifier.NotifyResolved(ctx, a); err != nil {
						return value, false, err
					}
				}
			}
		}

		return value, false, nil
	}
}

func escalate(value, at float64, base, escalated domain.AlertSeverity) domain.AlertSeverity {
	if value > at {
		return escalated
	}
	return base
}
