package domain

import "time"

type AlertType string

const (
	AlertCPUHigh       AlertType = "cpu_high"
	AlertMemoryHigh    AlertType = "memory_high"
	AlertErrorRateHigh AlertType = "error_rate_high"
)

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

type AlertStatus string

const (
	AlertActive   AlertStatus = "active"
	AlertResolved AlertStatus = "resolved"
)

type Alert struct {
	ID          int
	ServiceName string
	Type        AlertType
	Severity    AlertSeverity

	// Value is the metric reading that fired the alert,
	// Threshold the limit it crossed.
	Value     float64
	Threshold float64

	Message    string
	Status     AlertStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
