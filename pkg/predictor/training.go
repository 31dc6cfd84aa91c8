package predictor

import (
	"errors"
	"math"
	"time"

	"github.com/autoserve/autoserve/pkg/domain"
)

// at least this many observations are needed to fit weights.
const MinTrainingSamples = 10

var ErrInsufficientData = errors.New("not enough samples to train")

// Observation pairs a metric snapshot with the replica count
// the service was actually running with at that moment.
type Observation struct {
	Snapshot domain.MetricSnapshot
	Replicas int
}

// Fit estimates load score weights from observed snapshots and replica counts
// by ordinary least squares, and evaluates them on the same window.
//
// The target load of each observation is the score that would map exactly
// onto its replica count, so the fitted model reproduces past scaling
// behavior before the heuristics adjust it.
func Fit(
	name string,
	version int,
	observations []Observation,
	minReplicas, maxReplicas int,
	trainedAt time.Time,
) (domain.ScalingModel, error) {
	if len(observations) < MinTrainingSamples {
		return domain.ScalingModel{}, ErrInsufficientData
	}

	span := float64(maxReplicas - minReplicas)
	if span <= 0 {
		span = 1
	}

	// rows: [cpu, memory, capped request rate, 1], target: load in [0, 100]
	rows := make([][4]float64, len(observations))
	targets := make([]float64, len(observations))
	for i, o := range observations {
		s := o.Snapshot
		rows[i] = [4]float64{
			s.CPUUsage,
			s.MemoryUsage,
			cappedRequestRate(s.RequestRate),
			1,
		}
		targets[i] = float64(o.Replicas-minReplicas) / span * 100
	}

	coef, err := leastSquares(rows, targets)
	if err != nil {
		return domain.ScalingModel{}, err
	}

	model := domain.ScalingModel{
		Name:    name,
		Version: version,
		Weights: domain.ModelWeights{
			CPU:         coef[0],
			Memory:      coef[1],
			RequestRate: coef[2],
			Intercept:   coef[3],
		},
		TrainedAt: trainedAt,
	}

	p := New(model, minReplicas, maxReplicas)
	model.MAE, model.R2 = Evaluate(p, observations)

	return model, nil
}

// Evaluate measures mean absolute error and R2 of replica predictions
// over the given observations.
func Evaluate(p *Predictor, observations []Observation) (mae float64, r2 float64) {
	if len(observations) == 0 {
		return 0, 0
	}

	n := float64(len(observations))

	meanActual := 0.0
	for _, o := range observations {
		meanActual += float64(o.Replicas)
	}
	meanActual /= n

	var absErr, ssRes, ssTot float64
	for _, o := range observations {
		predicted := float64(p.Replicas(p.LoadScore(o.Snapshot)))
		actual := float64(o.Replicas)

		absErr += math.Abs(predicted - actual)
		ssRes += (predicted - actual) * (predicted - actual)
		ssTot += (actual - meanActual) * (actual - meanActual)
	}

	mae = absErr / n
	if ssTot == 0 {
		if ssRes == 0 {
			r2 = 1
		}
		return mae, r2
	}
	return mae, 1 - ssRes/ssTot
}

var errSingular = errors.New("normal equations are singular")

// leastSquares solves min ||X*b - y|| for 4 coefficients
// via the normal equations with Gaussian elimination.
func leastSquares(rows [][4]float64, targets []float64) ([4]float64, error) {
	var xtx [4][5]float64 // augmented with X^T*y

	for k, row := range rows {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xtx[i][4] += row[i] * targets[k]
		}
	}

	// forward elimination with partial pivoting
	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(xtx[r][col]) > math.Abs(xtx[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(xtx[pivot][col]) < 1e-12 {
			return [4]float64{}, errSingular
		}
		xtx[col], xtx[pivot] = xtx[pivot], xtx[col]

		for r := col + 1; r < 4; r++ {
			factor := xtx[r][col] / xtx[col][col]
			for c := col; c < 5; c++ {
				xtx[r][c] -= factor * xtx[col][c]
			}
		}
	}

	// back substitution
	var coef [4]float64
	for i := 3; 0 <= i; i-- {
		sum := xtx[i][4]
		for j := i + 1; j < 4; j++ {
			sum -= xtx[i][j] * coef[j]
		}
		coef[i] = sum / xtx[i][i]
	}

	return coef, nil
}
