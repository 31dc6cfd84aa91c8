package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	testctx "github.com/autoserve/autoserve/internal/testutils/context"
)

func TestGenerator(t *testing.T) {
	t.Run("Probe succeeds against a healthy endpoint", func(t *testing.T) {
		svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/health/" {
				t.Errorf("request path = %s, want /api/health/", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer svr.Close()

		gen := &Generator{
			BaseURL:  svr.URL,
			Endpoint: "/api/health/",
			Logger:   log.New(io.Discard, "", 0),
		}
		if err := gen.Probe(context.Background()); err != nil {
			t.Errorf("Probe returns error: %s", err)
		}
	})

	t.Run("Probe fails against a broken endpoint", func(t *testing.T) {
		svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer svr.Close()

		gen := &Generator{
			BaseURL: svr.URL,
			Logger:  log.New(io.Discard, "", 0),
		}
		if err := gen.Probe(context.Background()); err == nil {
			t.Error("Probe does not return error for status 503")
		}
	})

	t.Run("Run sends requests and reports the statistics", func(t *testing.T) {
		ctx, cancel := testctx.WithTest(context.Background(), t)
		defer cancel()

		svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer svr.Close()

		gen := &Generator{
			BaseURL: svr.URL,
			Logger:  log.New(io.Discard, "", 0),
		}
		sum := gen.Run(ctx, []int{5})

		if sum.Requests < 1 {
			t.Fatalf("Requests = %d, want at least 1", sum.Requests)
		}
		if sum.Requests > 6 {
			t.Errorf("Requests = %d for one second at 5 rps", sum.Requests)
		}
		if sum.SuccessRate != 100 {
			t.Errorf("SuccessRate = %.1f, want 100", sum.SuccessRate)
		}
		if sum.AvgLatency <= 0 {
			t.Errorf("AvgLatency = %s, want positive", sum.AvgLatency)
		}
	})

	t.Run("Run stops when the context is cancelled", func(t *testing.T) {
		svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer svr.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gen := &Generator{
			BaseURL: svr.URL,
			Logger:  log.New(io.Discard, "", 0),
		}
		sum := gen.Run(ctx, []int{5, 5, 5})
		if sum.Requests != 0 {
			t.Errorf("Requests = %d after cancellation, want 0", sum.Requests)
		}
	})
}
