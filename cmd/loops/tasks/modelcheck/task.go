package modelcheck

import (
	"context"
	"errors"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/recurring"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	kdbmodel "github.com/autoserve/autoserve/pkg/domain/model/db"
	kdbscaling "github.com/autoserve/autoserve/pkg/domain/scaling/db"
	k8sscaling "github.com/autoserve/autoserve/pkg/domain/scaling/k8s"
	kdbservice "github.com/autoserve/autoserve/pkg/domain/service/db"
)

// BaselineName is the name of the model stored when none is active yet.
const BaselineName = "baseline"

// DefaultWindow is how far back executed recommendations are checked.
const DefaultWindow = 1 * time.Hour

// initial value for task
func Seed() any {
	return nil
}

// return:
//
// - task: make sure an active model exists, and keep score of how it does.
//
// On a fresh database it stores and activates a baseline model with the
// default weights, so predictions are well-defined before the first
// retraining. Otherwise it compares the latest executed recommendation of
// each service within the window against the replica count the service
// is running now, and folds the hit rate into the model's running accuracy.
func Task(
	services kdbservice.Interface,
	scalingdb kdbscaling.Interface,
	models kdbmodel.Interface,
	cluster k8sscaling.Scaler,
	window time.Duration,
) recurring.Task[any] {
	return func(ctx context.Context, value any) (any, bool, error) {
		active, err := models.Active(ctx)
		if errors.Is(err, kerr.ErrMissing) {
			saved, err := models.Save(ctx, domain.ScalingModel{
				Name:      BaselineName,
				Version:   1,
				Weights:   domain.DefaultWeights,
				TrainedAt: time.Now(),
			})
			if err != nil {
				return value, false, err
			}
			return value, false, models.Activate(ctx, saved.ID)
		}
		if err != nil {
			return value, false, err
		}

		targets, err := services.ListEnabled(ctx)
		if err != nil {
			return value, false, err
		}

		since := time.Now().Add(-window)
		total, settled := 0, 0
		for _, svc := range targets {
			events, err := scalingdb.ExecutedSince(ctx, svc.Name, since)
			if err != nil {
				return value, false, err
			}
			if len(events) == 0 {
				continue
			}

			current, err := cluster.CurrentReplicas(ctx, svc.Namespace, svc.Name)
			if errors.Is(err, kerr.ErrMissing) {
				continue
			}
			if err != nil {
				return value, false, err
			}

			total += 1
			if current == events[0].NewReplicas {
				settled += 1
			}
		}
		if total == 0 {
			return value, false, nil
		}

		// running accuracy: the mean of the stored accuracy and the
		// fresh measurement, so one noisy window does not wipe the history.
		measured := float64(settled) / float64(total)
		accuracy := measured
		if 0 < active.Accuracy {
			accuracy = (active.Accuracy + measured) / 2
		}

		return value, false, models.UpdateAccuracy(ctx, active.ID, accuracy)
	}
}
