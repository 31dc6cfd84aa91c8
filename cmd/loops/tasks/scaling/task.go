package scaling

import (
	"context"
	"errors"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/recurring"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	kdbmetric "github.com/autoserve/autoserve/pkg/domain/metric/db"
	kdbmodel "github.com/autoserve/autoserve/pkg/domain/model/db"
	kdbscaling "github.com/autoserve/autoserve/pkg/domain/scaling/db"
	k8sscaling "github.com/autoserve/autoserve/pkg/domain/scaling/k8s"
	kdbservice "github.com/autoserve/autoserve/pkg/domain/service/db"
	"github.com/autoserve/autoserve/pkg/metrics"
	"github.com/autoserve/autoserve/pkg/predictor"
)

// initial value for task
func Seed() any {
	return nil
}

// return:
//
// - task: take a metric snapshot of each enabled service, predict the
// replica count it should run with, and rescale its deployment when the
// prediction is confident enough and the cooldown has passed.
//
// Every scale_up/scale_down decision is recorded as a scaling event,
// whether it was executed or suppressed.
func Task(
	services kdbservice.Interface,
	metricdb kdbmetric.Interface,
	scalingdb kdbscaling.Interface,
	models kdbmodel.Interface,
	cluster k8sscaling.Scaler,
	source metrics.Source,
	cooldown time.Duration,
	confidenceThreshold float64,
) recurring.Task[any] {
	return func(ctx context.Context, value any) (any, bool, error) {
		targets, err := services.ListEnabled(ctx)
		if err != nil {
			return value, false, err
		}

		model, err := models.Active(ctx)
		if errors.Is(err, kerr.ErrMissing) {
			model = domain.ScalingModel{Name: "baseline", Weights: domain.DefaultWeights}
		} else if err != nil {
			return value, false, err
		}

		now := time.Now()
		for _, svc := range targets {
			current, err := cluster.CurrentReplicas(ctx, svc.Namespace, svc.Name)
			if errors.Is(err, kerr.ErrMissing) {
				// the deployment is not there (yet). leave it alone.
				continue
			} else if err != nil {
				return value, false, err
			}

			snapshot, err := source.Snapshot(ctx, svc.Name, now)
			if err != nil {
				return value, false, err
			}
			if err := metricdb.Record(ctx, snapshot, current); err != nil {
				return value, false, err
			}

			pred := predictor.
				New(model, svc.MinReplicas, svc.MaxReplicas).
				Predict(snapshot, current)
			if pred.Action == domain.ScaleNone {
				continue
			}

			if pred.Confidence >= confidenceThreshold {
				last, err := scalingdb.LastExecuted(ctx, svc.Name)
				if err != nil {
					return value, false, err
				}
				if last == nil || cooldown <= now.Sub(*last) {
					if err := cluster.Scale(ctx, svc.Namespace, svc.Name, pred.RecommendedReplicas); err != nil {
						return value, false, err
					}
					pred.Executed = true
				}
			}

			if _, err := scalingdb.RecordEvent(ctx, pred.Event()); err != nil {
				return value, false, err
			}
		}

		return value, false, nil
	}
}
