package domain

import "time"

// metric names as recorded in the metrics table and queried from Prometheus.
const (
	MetricCPUUsage     = "cpu_usage"     // percent of limit
	MetricMemoryUsage  = "memory_usage"  // percent of limit
	MetricRequestRate  = "request_rate"  // requests per second
	MetricResponseTime = "response_time" // p95, milliseconds
	MetricErrorRate    = "error_rate"    // percent of requests answered 5xx
)

// MetricSample is a single observed value of one metric of one service.
type MetricSample struct {
	ServiceName string
	MetricName  string
	Value       float64
	RecordedAt  time.Time
}

// MetricSnapshot is the set of observations the predictor consumes,
// all taken for the same service at (nearly) the same moment.
//
// A metric missing from Prometheus reads as zero, matching how the
// snapshot is assembled.
type MetricSnapshot struct {
	ServiceName  string
	CPUUsage     float64
	MemoryUsage  float64
	RequestRate  float64
	ResponseTime float64
	ErrorRate    float64
	TakenAt      time.Time
}

// MetricRecord is a stored snapshot together with the replica count
// the service was running with when it was taken.
type MetricRecord struct {
	Snapshot MetricSnapshot
	Replicas int
}

// Samples flattens the snapshot into per-metric samples for recording.
func (s MetricSnapshot) Samples() []MetricSample {
	at := s.TakenAt
	return []MetricSample{
		{ServiceName: s.ServiceName, MetricName: MetricCPUUsage, Value: s.CPUUsage, RecordedAt: at},
		{ServiceName: s.ServiceName, MetricName: MetricMemoryUsage, Value: s.MemoryUsage, RecordedAt: at},
		{ServiceName: s.ServiceName, MetricName: MetricRequestRate, Value: s.RequestRate, RecordedAt: at},
		{ServiceName: s.ServiceName, MetricName: MetricResponseTime, Value: s.ResponseTime, RecordedAt: at},
		{ServiceName: s.ServiceName, MetricName: MetricErrorRate, Value: s.ErrorRate, RecordedAt: at},
	}
}
