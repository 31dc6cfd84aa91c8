package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/autoserve/autoserve/pkg/api/types/errors"
	apiservices "github.com/autoserve/autoserve/pkg/api/types/services"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	kdbservice "github.com/autoserve/autoserve/pkg/domain/service/db"
	"github.com/autoserve/autoserve/pkg/utils/slices"
)

// ServiceRegisterHandler handles POST /api/services.
func ServiceRegisterHandler(dbservice kdbservice.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()
		if strings.ToLower(req.Header.Get("content-type")) != "application/json" {
			return apierr.BadRequest(
				"unexpected content type. it should be application/json", nil,
			)
		}

		spec := new(apiservices.Spec)
		if err := json.NewDecoder(req.Body).Decode(spec); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}

		s, err := fromSpec(*spec)
		if err != nil {
			return apierr.BadRequest(err.Error(), err)
		}

		if err := dbservice.Register(ctx, s); err != nil {
			if errors.Is(err, kerr.ErrAlreadyExists) {
				return apierr.Conflict(
					"service is already registered", apierr.WithError(err),
				)
			}
			return apierr.InternalServerError(err)
		}

		registered, err := dbservice.Get(ctx, s.Name)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiservices.ComposeDetail(registered))
	}
}

// ServiceUpdateHandler handles PUT /api/services/:name.
func ServiceUpdateHandler(dbservice kdbservice.Interface, nameParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		name := c.Param(nameParam)

		spec := new(apiservices.Spec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		spec.Name = name

		s, err := fromSpec(*spec)
		if err != nil {
			return apierr.BadRequest(err.Error(), err)
		}

		if err := dbservice.Update(ctx, s); err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		updated, err := dbservice.Get(ctx, name)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiservices.ComposeDetail(updated))
	}
}

// ServiceListHandler handles GET /api/services.
func ServiceListHandler(dbservice kdbservice.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		services, err := dbservice.List(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK,
			slices.Map(services, apiservices.ComposeDetail),
		)
	}
}

var errNoServiceName = errors.New("service name is required")
var errBadReplicaBounds = errors.New("minReplicas should be 1 or more, and maxReplicas should not be less")

func fromSpec(spec apiservices.Spec) (domain.Service, error) {
	if spec.Name == "" {
		return domain.Service{}, errNoServiceName
	}

	s := domain.Service{
		Name:        spec.Name,
		Namespace:   spec.Namespace,
		MinReplicas: spec.MinReplicas,
		MaxReplicas: spec.MaxReplicas,
		Enabled:     true,
	}
	if s.Namespace == "" {
		s.Namespace = "default"
	}
	if s.MinReplicas == 0 {
		s.MinReplicas = 1
	}
	if s.MaxReplicas == 0 {
		s.MaxReplicas = 10
	}
	if spec.Enabled != nil {
		s.Enabled = *spec.Enabled
	}

	if s.MinReplicas < 1 || s.MaxReplicas < s.MinReplicas {
		return domain.Service{}, errBadReplicaBounds
	}
	return s, nil
}
