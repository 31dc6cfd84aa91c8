package retrain

import (
	"context"
	"errors"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/recurring"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	kdbmetric "github.com/autoserve/autoserve/pkg/domain/metric/db"
	kdbmodel "github.com/autoserve/autoserve/pkg/domain/model/db"
	kdbservice "github.com/autoserve/autoserve/pkg/domain/service/db"
	"github.com/autoserve/autoserve/pkg/predictor"
	"github.com/autoserve/autoserve/pkg/utils/slices"
)

// ModelName is the name trained models are stored under.
const ModelName = "least-squares"

// initial value for task
func Seed() any {
	return nil
}

// return:
//
// - task: refit the load score weights on the metric records of the
// training window and store the new model. It becomes the active one
// unless its error on the window is worse than the active model's.
//
// With fewer records than the fit needs, the cycle is a no-op and the
// active model stays.
func Task(
	services kdbservice.Interface,
	metricdb kdbmetric.Interface,
	models kdbmodel.Interface,
	window time.Duration,
	minReplicas, maxReplicas int,
) recurring.Task[any] {
	return func(ctx context.Context, value any) (any, bool, error) {
		targets, err := services.ListEnabled(ctx)
		if err != nil {
			return value, false, err
		}

		now := time.Now()
		since := now.Add(-window)
		observations := []predictor.Observation{}
		for _, svc := range targets {
			records, err := metricdb.Window(ctx, svc.Name, since)
			if err != nil {
				return value, false, err
			}
			observations = append(observations, slices.Map(
				records,
				func(r domain.MetricRecord) predictor.Observation {
					return predictor.Observation{Snapshot: r.Snapshot, Replicas: r.Replicas}
				},
			)...)
		}

		version := 1
		active, err := models.Active(ctx)
		hadActive := err == nil
		if hadActive {
			version = active.Version + 1
		} else if !errors.Is(err, kerr.ErrMissing) {
			return value, false, err
		}

		model, err := predictor.Fit(
			ModelName, version, observations,
			minReplicas, maxReplicas, now,
		)
		if errors.Is(err, predictor.ErrInsufficientData) {
			return value, false, nil
		} else if err != nil {
			return value, false, err
		}

		saved, err := models.Save(ctx, model)
		if err != nil {
			return value, false, err
		}

		// activate only when the refit does not regress against the
		// active model, both measured on the same window.
		if hadActive {
			activeMAE, _ := predictor.Evaluate(
				predictor.New(active, minReplicas, maxReplicas), observations,
			)
			if activeMAE < saved.MAE {
				return value, false, nil
			}
		}
		if err := models.Activate(ctx, saved.ID); err != nil {
			return value, false, err
		}

		return value, false, nil
	}
}
