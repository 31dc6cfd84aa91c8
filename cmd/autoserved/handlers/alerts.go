package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apialerts "github.com/autoserve/autoserve/pkg/api/types/alerts"
	apierr "github.com/autoserve/autoserve/pkg/api/types/errors"
	"github.com/autoserve/autoserve/pkg/domain"
	kdbalert "github.com/autoserve/autoserve/pkg/domain/alert/db"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	"github.com/autoserve/autoserve/pkg/utils/slices"
)

// AlertListHandler handles GET /api/alerts.
//
// Query parameter status selects "active" (the default), "resolved" or "all".
func AlertListHandler(alerts kdbalert.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		status := domain.AlertActive
		switch p := c.QueryParam("status"); p {
		case "", "active":
			// default
		case "resolved":
			status = domain.AlertResolved
		case "all":
			status = ""
		default:
			return apierr.BadRequest("status should be one of active|resolved|all", nil)
		}

		found, err := alerts.List(ctx, status)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK,
			slices.Map(found, apialerts.ComposeDetail),
		)
	}
}

// AlertResolveHandler handles PUT /api/alerts/:id/resolve.
func AlertResolveHandler(alerts kdbalert.Interface, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := strconv.Atoi(c.Param(idParam))
		if err != nil {
			return apierr.BadRequest("alert id should be an integer", err)
		}

		resolved, err := alerts.Resolve(ctx, id, time.Now())
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		alertsResolved.Inc()
		return c.JSON(http.StatusOK, apialerts.ComposeDetail(resolved))
	}
}
