package domain

import "time"

// ModelWeights are the linear coefficients of the load score model.
//
// load = CPU * cpuUsage + Memory * memoryUsage + RequestRate * min(requestRate/100, 100)
type ModelWeights struct {
	CPU         float64 `json:"cpu"`
	Memory      float64 `json:"memory"`
	RequestRate float64 `json:"request_rate"`
	Intercept   float64 `json:"intercept"`
}

// DefaultWeights is the bootstrap model used before any training has run.
var DefaultWeights = ModelWeights{CPU: 0.3, Memory: 0.3, RequestRate: 0.4}

// ScalingModel is a trained (or bootstrap) model with its evaluation scores.
type ScalingModel struct {
	ID      int
	Name    string
	Version int
	Weights ModelWeights

	// MAE and R2 are measured on the training window at fit time.
	MAE float64
	R2  float64

	// Accuracy is the running fraction of executed recommendations the
	// services actually settled on, kept up to date by the model check loop.
	Accuracy float64

	Active    bool
	TrainedAt time.Time
}
