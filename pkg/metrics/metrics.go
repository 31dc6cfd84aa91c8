// Package metrics reads service resource and traffic metrics from Prometheus.
package metrics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/autoserve/autoserve/pkg/conn/prometheus"
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/xerrors"
	"github.com/prometheus/common/model"
)

// query templates. %s is the service name.
const (
	queryCPUUsage = `avg(rate(container_cpu_usage_seconds_total{pod=~"%s-.*"}[5m])) * 100`

	queryMemoryUsage = `avg(container_memory_usage_bytes{pod=~"%s-.*"}) / avg(container_spec_memory_limit_bytes{pod=~"%s-.*"}) * 100`

	queryRequestRate = `sum(rate(http_requests_total{service="%s"}[5m]))`

	// p95 latency, converted to milliseconds.
	queryResponseTime = `histogram_quantile(0.95, sum(rate(http_request_duration_seconds_bucket{service="%s"}[5m])) by (le)) * 1000`

	// percentage of 5xx responses.
	queryErrorRate = `sum(rate(http_requests_total{service="%s",status=~"5.."}[5m])) / sum(rate(http_requests_total{service="%s"}[5m])) * 100`
)

// Source yields metric snapshots of services.
//
// *Fetcher is the Prometheus-backed implementation.
type Source interface {
	Snapshot(ctx context.Context, service string, ts time.Time) (domain.MetricSnapshot, error)
}

type Fetcher struct {
	prom prometheus.Querier
}

var _ Source = (*Fetcher)(nil)

func New(prom prometheus.Querier) *Fetcher {
	return &Fetcher{prom: prom}
}

// Snapshot queries all metrics of the service at time ts.
//
// Metrics the service does not expose yet (empty query results) come back as zero.
func (f *Fetcher) Snapshot(ctx context.Context, service string, ts time.Time) (domain.MetricSnapshot, error) {
	snapshot := domain.MetricSnapshot{ServiceName: service, TakenAt: ts}

	for _, q := range []struct {
		query string
		dest  *float64
	}{
		{fmt.Sprintf(queryCPUUsage, service), &snapshot.CPUUsage},
		{fmt.Sprintf(queryMemoryUsage, service, service), &snapshot.MemoryUsage},
		{fmt.Sprintf(queryRequestRate, service), &snapshot.RequestRate},
		{fmt.Sprintf(queryResponseTime, service), &snapshot.ResponseTime},
		{fmt.Sprintf(queryErrorRate, service, service), &snapshot.ErrorRate},
	} {
		v, err := f.scalar(ctx, q.query, ts)
		if err != nil {
			return domain.MetricSnapshot{}, xerrors.Wrap(err)
		}
		*q.dest = v
	}

	return snapshot, nil
}

// scalar evaluates an instant query and takes the first sample of the result.
func (f *Fetcher) scalar(ctx context.Context, query string, ts time.Time) (float64, error) {
	result, _, err := f.prom.Query(ctx, query, ts)
	if err != nil {
		return 0, err
	}

	switch v := result.(type) {
	case model.Vector:
		if len(v) == 0 {
			return 0, nil
		}
		return sanitize(float64(v[0].Value)), nil
	case *model.Scalar:
		return sanitize(float64(v.Value)), nil
	default:
		return 0, fmt.Errorf("unexpected result type for %q: %s", query, result.Type())
	}
}

// sanitize maps NaN and infinities (empty rate windows, zero denominators) to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
