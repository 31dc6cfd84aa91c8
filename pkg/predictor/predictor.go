// Package predictor recommends replica counts from metric snapshots.
//
// The model is a weighted load score over resource metrics,
// mapped linearly onto the allowed replica range.
package predictor

import (
	"fmt"
	"math"

	"github.com/autoserve/autoserve/pkg/domain"
)

const (
	// the request rate feature is the rate scaled down to load points,
	// saturating at this level.
	requestRateCap = 100

	minConfidence = 0.5
	maxConfidence = 0.95
)

// cappedRequestRate converts req/s into the load score feature:
// one load point per 100 req/s, capped.
func cappedRequestRate(rate float64) float64 {
	return math.Min(math.Max(rate/100, 0), requestRateCap)
}

type Predictor struct {
	model       domain.ScalingModel
	minReplicas int
	maxReplicas int
}

func New(model domain.ScalingModel, minReplicas, maxReplicas int) *Predictor {
	return &Predictor{
		model:       model,
		minReplicas: minReplicas,
		maxReplicas: maxReplicas,
	}
}

func (p *Predictor) Model() domain.ScalingModel {
	return p.model
}

// LoadScore maps a snapshot onto [0, 100] (may exceed when the service is overloaded).
func (p *Predictor) LoadScore(s domain.MetricSnapshot) float64 {
	w := p.model.Weights
	return w.CPU*s.CPUUsage +
		w.Memory*s.MemoryUsage +
		w.RequestRate*cappedRequestRate(s.RequestRate) +
		w.Intercept
}

// Confidence scores how much the resource signals agree with each other.
//
// When cpu, memory, request rate and response time diverge wildly,
// the load score is a poor summary and the result is capped low.
func (p *Predictor) Confidence(s domain.MetricSnapshot) float64 {
	features := []float64{
		s.CPUUsage,
		s.MemoryUsage,
		s.RequestRate,
		s.ResponseTime,
	}

	mean := 0.0
	for _, f := range features {
		mean += f
	}
	mean /= float64(len(features))
	if mean <= 0 {
		return minConfidence
	}

	variance := 0.0
	for _, f := range features {
		variance += (f - mean) * (f - mean)
	}
	stddev := math.Sqrt(variance / float64(len(features)))

	return clamp(1-stddev/mean, minConfidence, maxConfidence)
}

// Replicas converts a load score into a replica count within [minReplicas, maxReplicas].
func (p *Predictor) Replicas(loadScore float64) int {
	span := float64(p.maxReplicas - p.minReplicas)
	raw := float64(p.minReplicas) + loadScore/100*span
	return clampInt(int(math.Round(raw)), p.minReplicas, p.maxReplicas)
}

// Predict recommends a replica count for the service behind the snapshot.
func (p *Predictor) Predict(s domain.MetricSnapshot, currentReplicas int) domain.Prediction {
	load := p.LoadScore(s)
	recommended := p.Replicas(load)

	action := domain.ScaleNone
	switch {
	case recommended > currentReplicas:
		action = domain.ScaleUp
	case recommended < currentReplicas:
		action = domain.ScaleDown
	}

	return domain.Prediction{
		ServiceName:         s.ServiceName,
		CurrentReplicas:     currentReplicas,
		RecommendedReplicas: recommended,
		Confidence:          p.Confidence(s),
		Action:              action,
		Reason: fmt.Sprintf(
			"load score %.1f suggests %d replicas (currently %d)",
			load, recommended, currentReplicas,
		),
		Snapshot:     s,
		ModelVersion: p.model.Version,
		MadeAt:       s.TakenAt,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi < v {
		return hi
	}
	return v
}
