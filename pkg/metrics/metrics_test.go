package metrics_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	mocks "github.com/autoserve/autoserve/pkg/conn/prometheus/mock"
	"github.com/autoserve/autoserve/pkg/metrics"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

func vector(v float64) model.Vector {
	return model.Vector{
		&model.Sample{Value: model.SampleValue(v)},
	}
}

func TestSnapshot(t *testing.T) {
	t.Run("it composes a snapshot from query results", func(t *testing.T) {
		prom := mocks.NewMockQuerier()
		prom.Impl.Query = func(ctx context.Context, query string, ts time.Time) (model.Value, v1.Warnings, error) {
			if !strings.Contains(query, "fake-service") {
				t.Errorf("query does not select the service: %s", query)
			}
			switch {
			case strings.Contains(query, "container_cpu_usage_seconds_total"):
				return vector(42.5), nil, nil
			case strings.Contains(query, "container_memory_usage_bytes"):
				return vector(63.25), nil, nil
			case strings.Contains(query, "http_request_duration_seconds_bucket"):
				return vector(120.5), nil, nil
			case strings.Contains(query, `status=~"5.."`):
				return vector(1.5), nil, nil
			case strings.Contains(query, "http_requests_total"):
				return vector(87.5), nil, nil
			default:
				t.Fatalf("unexpected query: %s", query)
				return nil, nil, nil
			}
		}

		takenAt := time.Date(2024, 4, 1, 12, 13, 14, 0, time.UTC)
		testee := metrics.New(prom)

		actual, err := testee.Snapshot(context.Background(), "fake-service", takenAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if actual.ServiceName != "fake-service" {
			t.Errorf("service name: expected fake-service, but %s", actual.ServiceName)
		}
		if actual.CPUUsage != 42.5 {
			t.Errorf("cpu usage: expected 42.5, but %f", actual.CPUUsage)
		}
		if actual.MemoryUsage != 63.25 {
			t.Errorf("memory usage: expected 63.25, but %f", actual.MemoryUsage)
		}
		if actual.RequestRate != 87.5 {
			t.Errorf("request rate: expected 87.5, but %f", actual.RequestRate)
		}
		if actual.ResponseTime != 120.5 {
			t.Errorf("response time: expected 120.5, but %f", actual.ResponseTime)
		}
		if actual.ErrorRate != 1.5 {
			t.Errorf("error rate: expected 1.5, but %f", actual.ErrorRate)
		}
		if !actual.TakenAt.Equal(takenAt) {
			t.Errorf("taken at: expected %v, but %v", takenAt, actual.TakenAt)
		}
	})

	t.Run("it treats empty results as zero", func(t *testing.T) {
		prom := mocks.NewMockQuerier()
		prom.Impl.Query = func(ctx context.Context, query string, ts time.Time) (model.Value, v1.Warnings, error) {
			return model.Vector{}, nil, nil
		}

		testee := metrics.New(prom)
		actual, err := testee.Snapshot(context.Background(), "idle-service", time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if actual.CPUUsage != 0 || actual.MemoryUsage != 0 || actual.RequestRate != 0 ||
			actual.ResponseTime != 0 || actual.ErrorRate != 0 {
			t.Errorf("expected all-zero snapshot, but %+v", actual)
		}
	})

	t.Run("it treats NaN results as zero", func(t *testing.T) {
		prom := mocks.NewMockQuerier()
		prom.Impl.Query = func(ctx context.Context, query string, ts time.Time) (model.Value, v1.Warnings, error) {
			return vector(math.NaN()), nil, nil
		}

		testee := metrics.New(prom)
		actual, err := testee.Snapshot(context.Background(), "idle-service", time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if actual.ErrorRate != 0 {
			t.Errorf("expected zero error rate, but %f", actual.ErrorRate)
		}
	})

	t.Run("it propagates query errors", func(t *testing.T) {
		expectedErr := errors.New("fake prometheus error")
		prom := mocks.NewMockQuerier()
		prom.Impl.Query = func(ctx context.Context, query string, ts time.Time) (model.Value, v1.Warnings, error) {
			return nil, nil, expectedErr
		}

		testee := metrics.New(prom)
		if _, err := testee.Snapshot(context.Background(), "fake-service", time.Now()); !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, but %v", expectedErr, err)
		}
	})
}
