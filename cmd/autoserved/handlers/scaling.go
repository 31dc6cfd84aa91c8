package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/autoserve/autoserve/pkg/api/types/errors"
	apiscaling "github.com/autoserve/autoserve/pkg/api/types/scaling"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	kdbmodel "github.com/autoserve/autoserve/pkg/domain/model/db"
	kdbscaling "github.com/autoserve/autoserve/pkg/domain/scaling/db"
	k8sscaling "github.com/autoserve/autoserve/pkg/domain/scaling/k8s"
	kdbservice "github.com/autoserve/autoserve/pkg/domain/service/db"
	"github.com/autoserve/autoserve/pkg/metrics"
	"github.com/autoserve/autoserve/pkg/predictor"
	"github.com/autoserve/autoserve/pkg/utils/slices"
)

// PredictHandler handles POST /api/predict.
//
// It runs the active model over the current metrics of the service.
// With execute:true in the request, the prediction is applied under the
// same confidence and cooldown gates as the scaling loop.
func PredictHandler(
	dbservice kdbservice.Interface,
	dbscaling kdbscaling.Interface,
	models kdbmodel.Interface,
	cluster k8sscaling.Scaler,
	source metrics.Source,
	cooldown time.Duration,
	confidenceThreshold float64,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := new(apiscaling.PredictRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		if req.Service == "" {
			return apierr.BadRequest("service is required", nil)
		}

		svc, err := dbservice.Get(ctx, req.Service)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		current, err := cluster.CurrentReplicas(ctx, svc.Namespace, svc.Name)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		now := time.Now()
		snapshot, err := source.Snapshot(ctx, svc.Name, now)
		if err != nil {
			return apierr.ServiceUnavailable("metrics are not reachable. try later", err)
		}

		model, err := models.Active(ctx)
		if errors.Is(err, kerr.ErrMissing) {
			model = domain.ScalingModel{Name: "baseline", Weights: domain.DefaultWeights}
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		pred := predictor.
			New(model, svc.MinReplicas, svc.MaxReplicas).
			Predict(snapshot, current)

		if req.Execute && pred.Action != domain.ScaleNone &&
			confidenceThreshold <= pred.Confidence {

			last, err := dbscaling.LastExecuted(ctx, svc.Name)
			if err != nil {
				return apierr.InternalServerError(err)
			}
			if last == nil || cooldown <= now.Sub(*last) {
				if err := cluster.Scale(ctx, svc.Namespace, svc.Name, pred.RecommendedReplicas); err != nil {
					return apierr.InternalServerError(err)
				}
				pred.Executed = true
				scalingsExecuted.WithLabelValues(string(domain.TriggerPrediction)).Inc()
			}
		}

		if pred.Action != domain.ScaleNone {
			if _, err := dbscaling.RecordEvent(ctx, pred.Event()); err != nil {
				return apierr.InternalServerError(err)
			}
		}

		predictionsServed.Inc()
		return c.JSON(http.StatusOK, apiscaling.ComposePrediction(pred))
	}
}

// ScaleHandler handles POST /api/scale.
//
// It sets the replica count of the service by hand, clamped into the
// replica bounds of the service, and records the event with
// trigger=manual. Manual scalings skip the cooldown.
func ScaleHandler(
	dbservice kdbservice.Interface,
	dbscaling kdbscaling.Interface,
	cluster k8sscaling.Scaler,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := new(apiscaling.ScaleRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		if req.Service == "" {
			return apierr.BadRequest("service is required", nil)
		}
		if req.Replicas < 1 {
			return apierr.BadRequest("replicas should be 1 or more", nil)
		}

		svc, err := dbservice.Get(ctx, req.Service)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		replicas := req.Replicas
		if replicas < svc.MinReplicas {
			replicas = svc.MinReplicas
		}
		if svc.MaxReplicas < replicas {
			replicas = svc.MaxReplicas
		}

		current, err := cluster.CurrentReplicas(ctx, svc.Namespace, svc.Name)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		if err := cluster.Scale(ctx, svc.Namespace, svc.Name, replicas); err != nil {
			return apierr.InternalServerError(err)
		}

		action := domain.ScaleNone
		if current < replicas {
			action = domain.ScaleUp
		} else if replicas < current {
			action = domain.ScaleDown
		}

		reason := req.Reason
		if reason == "" {
			reason = "manual scaling request"
		}

		event := domain.ScalingEvent{
			ServiceName:      svc.Name,
			Action:           action,
			PreviousReplicas: current,
			NewReplicas:      replicas,
			Trigger:          domain.TriggerManual,
			Reason:           reason,
			Executed:         true,
			CreatedAt:        time.Now(),
		}
		id, err := dbscaling.RecordEvent(ctx, event)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		event.ID = id

		scalingsExecuted.WithLabelValues(string(domain.TriggerManual)).Inc()
		return c.JSON(http.StatusOK, apiscaling.ComposeEvent(event))
	}
}

// EventsHandler handles GET /api/scaling-events.
//
// Query parameters: service (filter by service name), limit (default 50).
func EventsHandler(dbscaling kdbscaling.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		limit := 50
		if p := c.QueryParam("limit"); p != "" {
			l, err := strconv.Atoi(p)
			if err != nil || l < 1 {
				return apierr.BadRequest("limit should be a positive integer", err)
			}
			limit = l
		}

		events, err := dbscaling.Events(ctx, c.QueryParam("service"), limit)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK,
			slices.Map(events, apiscaling.ComposeEvent),
		)
	}
}
