package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Generator drives HTTP load against a single endpoint following a schedule
// of per-second request rates.
type Generator struct {
	BaseURL  string
	Endpoint string
	Client   *http.Client
	Logger   *log.Logger

	mu        sync.Mutex
	requests  int
	successes int
	latency   time.Duration
}

// Summary holds the aggregate statistics of a finished run.
type Summary struct {
	Duration    time.Duration
	Requests    int
	ActualRPS   float64
	SuccessRate float64
	AvgLatency  time.Duration
}

func (g *Generator) client() *http.Client {
	if g.Client != nil {
		return g.Client
	}
	return &http.Client{Timeout: 5 * time.Second}
}

func (g *Generator) url() string {
	return g.BaseURL + g.Endpoint
}

// Probe checks that the target endpoint is reachable and healthy.
func (g *Generator) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url(), nil)
	if err != nil {
		return err
	}
	resp, err := g.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status from %s: %s", g.url(), resp.Status)
	}
	return nil
}

func (g *Generator) do(ctx context.Context) {
	start := time.Now()
	var ok bool

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url(), nil)
	if err == nil {
		resp, err := g.client().Do(req)
		if err == nil {
			ok = resp.StatusCode == http.StatusOK
			resp.Body.Close()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests += 1
	if ok {
		g.successes += 1
	}
	g.latency += time.Since(start)
}

// Run fires requests following the schedule, one entry per second.
// The rate within each second is paced by a token-bucket limiter.
//
// Run blocks until the schedule is exhausted or ctx is cancelled,
// and returns the statistics of everything sent so far.
func (g *Generator) Run(ctx context.Context, schedule []int) Summary {
	start := time.Now()
	wg := &sync.WaitGroup{}
	limiter := rate.NewLimiter(rate.Limit(0), 1)

	for i, rps := range schedule {
		if ctx.Err() != nil {
			break
		}
		g.Logger.Printf("step %d/%d: %d rps", i+1, len(schedule), rps)
		limiter.SetLimit(rate.Limit(rps))

		stepCtx, cancel := context.WithTimeout(ctx, time.Second)
		for {
			if err := limiter.Wait(stepCtx); err != nil {
				break
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				g.do(ctx)
			}()
		}
		cancel()
	}

	wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	sum := Summary{
		Duration: time.Since(start),
		Requests: g.requests,
	}
	if sum.Duration > 0 {
		sum.ActualRPS = float64(g.requests) / sum.Duration.Seconds()
	}
	if g.requests > 0 {
		sum.SuccessRate = float64(g.successes) / float64(g.requests) * 100
		sum.AvgLatency = g.latency / time.Duration(g.requests)
	}
	return sum
}
