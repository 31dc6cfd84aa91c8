package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// self-metrics, exposed at /metrics.
var (
	predictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "autoserve",
		Subsystem: "api",
		Name:      "predictions_total",
		Help:      "Number of predictions served over the API.",
	})

	scalingsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autoserve",
		Subsystem: "api",
		Name:      "scalings_executed_total",
		Help:      "Number of scalings executed over the API, by trigger.",
	}, []string{"trigger"})

	alertsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "autoserve",
		Subsystem: "api",
		Name:      "alerts_resolved_total",
		Help:      "Number of alerts resolved over the API.",
	})
)
