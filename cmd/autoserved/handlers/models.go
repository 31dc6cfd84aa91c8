package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/autoserve/autoserve/pkg/api/types/errors"
	apimodels "github.com/autoserve/autoserve/pkg/api/types/models"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	kdbmetric "github.com/autoserve/autoserve/pkg/domain/metric/db"
	kdbmodel "github.com/autoserve/autoserve/pkg/domain/model/db"
	kdbservice "github.com/autoserve/autoserve/pkg/domain/service/db"
	"github.com/autoserve/autoserve/pkg/predictor"
	"github.com/autoserve/autoserve/pkg/utils/slices"
)

// ModelListHandler handles GET /api/models.
func ModelListHandler(models kdbmodel.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		stored, err := models.List(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK,
			slices.Map(stored, apimodels.ComposeDetail),
		)
	}
}

// RetrainHandler handles POST /api/models/retrain.
//
// It refits the load score weights on the metric records of the
// training window and activates the new model when it does not regress,
// like the retrain loop does on schedule.
func RetrainHandler(
	dbservice kdbservice.Interface,
	dbmetric kdbmetric.Interface,
	models kdbmodel.Interface,
	modelName string,
	window time.Duration,
	minReplicas, maxReplicas int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		targets, err := dbservice.ListEnabled(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		now := time.Now()
		since := now.Add(-window)
		observations := []predictor.Observation{}
		for _, svc := range targets {
			records, err := dbmetric.Window(ctx, svc.Name, since)
			if err != nil {
				return apierr.InternalServerError(err)
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
			return apierr.InternalServerError(err)
		}

		model, err := predictor.Fit(
			modelName, version, observations,
			minReplicas, maxReplicas, now,
		)
		if errors.Is(err, predictor.ErrInsufficientData) {
			return apierr.Conflict(
				"not enough metric records to train a model",
				apierr.WithError(err),
				apierr.WithAdvice("let the loops collect metrics for a while, then retry"),
			)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		saved, err := models.Save(ctx, model)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		// same gate as the retrain loop: a refit that regresses on the
		// window is stored but the active model stays.
		activate := true
		if hadActive {
			activeMAE, _ := predictor.Evaluate(
				predictor.New(active, minReplicas, maxReplicas), observations,
			)
			activate = saved.MAE <= activeMAE
		}
		if activate {
			if err := models.Activate(ctx, saved.ID); err != nil {
				return apierr.InternalServerError(err)
			}
			saved.Active = true
		}

		return c.JSON(http.StatusOK, apimodels.ComposeDetail(saved))
	}
}
