package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/autoserve/autoserve/pkg/auth"
	"github.com/labstack/echo/v4"
)

func TestJWS(t *testing.T) {
	signKey := "fake-sign-key"

	t.Run("it verifies a token it signed", func(t *testing.T) {
		token, err := auth.NewJWS(signKey, "admin", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, err := auth.VerifyJWS(signKey, token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.Subject != "admin" {
			t.Errorf("subject: expected admin, but %s", claims.Subject)
		}
	})

	t.Run("it rejects a token signed with another key", func(t *testing.T) {
		token, err := auth.NewJWS("another-key", "admin", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := auth.VerifyJWS(signKey, token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, but %v", err)
		}
	})

	t.Run("it rejects an expired token", func(t *testing.T) {
		token, err := auth.NewJWS(signKey, "admin", time.Now().Add(-time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := auth.VerifyJWS(signKey, token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, but %v", err)
		}
	})

	t.Run("it rejects garbage", func(t *testing.T) {
		if _, err := auth.VerifyJWS(signKey, "not.a.token"); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, but %v", err)
		}
	})
}

func TestMiddleware(t *testing.T) {
	signKey := "fake-sign-key"

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	invoke := func(t *testing.T, signKey string, header string) *httptest.ResponseRecorder {
		t.Helper()

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/scale", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		resp := httptest.NewRecorder()
		c := e.NewContext(req, resp)

		guarded := auth.Middleware(signKey)(handler)
		if err := guarded(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return resp
	}

	t.Run("it passes requests with a valid token", func(t *testing.T) {
		token, err := auth.NewJWS(signKey, "admin", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp := invoke(t, signKey, "Bearer "+token)
		if resp.Code != http.StatusOK {
			t.Errorf("status: expected %d, but %d", http.StatusOK, resp.Code)
		}
	})

	t.Run("it rejects requests without a token", func(t *testing.T) {
		resp := invoke(t, signKey, "")
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("status: expected %d, but %d", http.StatusUnauthorized, resp.Code)
		}
	})

	t.Run("it rejects requests with a broken token", func(t *testing.T) {
		resp := invoke(t, signKey, "Bearer broken")
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("status: expected %d, but %d", http.StatusUnauthorized, resp.Code)
		}
	})

	t.Run("it passes everything when no key is configured", func(t *testing.T) {
		resp := invoke(t, "", "")
		if resp.Code != http.StatusOK {
			t.Errorf("status: expected %d, but %d", http.StatusOK, resp.Code)
		}
	})
}
