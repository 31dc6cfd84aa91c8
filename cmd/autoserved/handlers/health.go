package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Probe checks that one dependency of the server is reachable.
type Probe func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler handles GET /api/health.
//
// It runs each probe and reports per-dependency results. The status is
// "ok" only when every probe passes, "degraded" otherwise (with
// status code 503).
func HealthHandler(probes map[string]Probe) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		resp := healthResponse{Status: "ok", Checks: map[string]string{}}
		for name, probe := range probes {
			if err := probe(ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				continue
			}
			resp.Checks[name] = "ok"
		}

		code := http.StatusOK
		if resp.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, resp)
	}
}
