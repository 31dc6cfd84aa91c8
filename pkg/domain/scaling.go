package domain

import "time"

type ScalingAction string

const (
	ScaleUp   ScalingAction = "scale_up"
	ScaleDown ScalingAction = "scale_down"
	ScaleNone ScalingAction = "none"
)

type ScalingTrigger string

const (
	TriggerPrediction ScalingTrigger = "ml_prediction"
	TriggerManual     ScalingTrigger = "manual"
)

// ScalingEvent records one scaling decision, executed or not.
type ScalingEvent struct {
	ID               int
	ServiceName      string
	Action           ScalingAction
	PreviousReplicas int
	NewReplicas      int
	Trigger          ScalingTrigger

	// Confidence is nil for manual scalings.
	Confidence *float64

	Reason    string
	Executed  bool
	CreatedAt time.Time
}

// Prediction is the outcome of running the model over a snapshot.
type Prediction struct {
	ServiceName         string
	CurrentReplicas     int
	RecommendedReplicas int
	Confidence          float64
	Action              ScalingAction
	Reason              string
	Snapshot            MetricSnapshot
	ModelVersion        int
	Executed            bool
	MadeAt              time.Time
}

// Event converts a prediction into its scaling event record.
func (p Prediction) Event() ScalingEvent {
	confidence := p.Confidence
	return ScalingEvent{
		ServiceName:      p.ServiceName,
		Action:           p.Action,
		PreviousReplicas: p.CurrentReplicas,
		NewReplicas:      p.RecommendedReplicas,
		Trigger:          TriggerPrediction,
		Confidence:       &confidence,
		Reason:           p.Reason,
		Executed:         p.Executed,
		CreatedAt:        p.MadeAt,
	}
}
