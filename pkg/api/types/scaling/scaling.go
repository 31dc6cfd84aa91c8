package scaling

import (
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/utils/rfctime"
)

type Metrics struct {
	CPUUsage     float64 `json:"cpuUsage"`
	MemoryUsage  float64 `json:"memoryUsage"`
	RequestRate  float64 `json:"requestRate"`
	ResponseTime float64 `json:"responseTime"`
	ErrorRate    float64 `json:"errorRate"`
}

func ComposeMetrics(s domain.MetricSnapshot) Metrics {
	return Metrics{
		CPUUsage:     s.CPUUsage,
		MemoryUsage:  s.MemoryUsage,
		RequestRate:  s.RequestRate,
		ResponseTime: s.ResponseTime,
		ErrorRate:    s.ErrorRate,
	}
}

func (m *Metrics) Equal(o *Metrics) bool {
	if m == nil || o == nil {
		return (m == nil) && (o == nil)
	}
	return m.CPUUsage == o.CPUUsage &&
		m.MemoryUsage == o.MemoryUsage &&
		m.RequestRate == o.RequestRate &&
		m.ResponseTime == o.ResponseTime &&
		m.ErrorRate == o.ErrorRate
}

type PredictRequest struct {
	Service string `json:"service"`

	// Execute applies the prediction, under the same gates as the
	// scaling loop.
	Execute bool `json:"execute,omitempty"`
}

type Prediction struct {
	Service             string          `json:"service"`
	CurrentReplicas     int             `json:"currentReplicas"`
	RecommendedReplicas int             `json:"recommendedReplicas"`
	Confidence          float64         `json:"confidence"`
	Action              string          `json:"action"`
	Reason              string          `json:"reason"`
	Metrics             Metrics         `json:"metrics"`
	ModelVersion        int             `json:"modelVersion"`
	Executed            bool            `json:"executed"`
	MadeAt              rfctime.RFC3339 `json:"madeAt"`
}

func ComposePrediction(p domain.Prediction) Prediction {
	return Prediction{
		Service:             p.ServiceName,
		CurrentReplicas:     p.CurrentReplicas,
		RecommendedReplicas: p.RecommendedReplicas,
		Confidence:          p.Confidence,
		Action:              string(p.Action),
		Reason:              p.Reason,
		Metrics:             ComposeMetrics(p.Snapshot),
		ModelVersion:        p.ModelVersion,
		Executed:            p.Executed,
		MadeAt:              rfctime.RFC3339(p.MadeAt),
	}
}

func (p *Prediction) Equal(o *Prediction) bool {
	if p == nil || o == nil {
		return (p == nil) && (o == nil)
	}
	return p.Service == o.Service &&
		p.CurrentReplicas == o.CurrentReplicas &&
		p.RecommendedReplicas == o.RecommendedReplicas &&
		p.Confidence == o.Confidence &&
		p.Action == o.Action &&
		p.Reason == o.Reason &&
		p.Metrics.Equal(&o.Metrics) &&
		p.ModelVersion == o.ModelVersion &&
		p.Executed == o.Executed &&
		p.MadeAt.Equal(&o.MadeAt)
}

type ScaleRequest struct {
	Service  string `json:"service"`
	Replicas int    `json:"replicas"`
	Reason   string `json:"reason,omitempty"`
}

type Event struct {
	Id               int             `json:"id"`
	Service          string          `json:"service"`
	Action           string          `json:"action"`
	PreviousReplicas int             `json:"previousReplicas"`
	NewReplicas      int             `json:"newReplicas"`
	Trigger          string          `json:"trigger"`
	Confidence       *float64        `json:"confidence,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	Executed         bool            `json:"executed"`
	CreatedAt        rfctime.RFC3339 `json:"createdAt"`
}

func ComposeEvent(e domain.ScalingEvent) Event {
	return Event{
		Id:               e.ID,
		Service:          e.ServiceName,
		Action:           string(e.Action),
		PreviousReplicas: e.PreviousReplicas,
		NewReplicas:      e.NewReplicas,
		Trigger:          string(e.Trigger),
		Confidence:       e.Confidence,
		Reason:           e.Reason,
		Executed:         e.Executed,
		CreatedAt:        rfctime.RFC3339(e.CreatedAt),
	}
}

func (e *Event) Equal(o *Event) bool {
	if e == nil || o == nil {
		return (e == nil) && (o == nil)
	}
	confidenceEq := (e.Confidence == nil) == (o.Confidence == nil) &&
		(e.Confidence == nil || *e.Confidence == *o.Confidence)
	return e.Id == o.Id &&
		e.Service == o.Service &&
		e.Action == o.Action &&
		e.PreviousReplicas == o.PreviousReplicas &&
		e.NewReplicas == o.NewReplicas &&
		e.Trigger == o.Trigger &&
		confidenceEq &&
		e.Reason == o.Reason &&
		e.Executed == o.Executed &&
		e.CreatedAt.Equal(&o.CreatedAt)
}
