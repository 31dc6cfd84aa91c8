package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	defer cancel()

	var url string
	var pattern string
	var duration int
	var rps int
	var endpoint string

	cmd := &cobra.Command{
		Use:          "traffic",
		Short:        "generate traffic patterns against a service",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := AsPattern(pattern)
			if err != nil {
				return err
			}
			schedule, err := BuildSchedule(p, duration, rps, nil)
			if err != nil {
				return err
			}

			gen := &Generator{BaseURL: url, Endpoint: endpoint, Logger: logger}
			if err := gen.Probe(c.Context()); err != nil {
				return err
			}
			logger.Printf("connected to %s", url)
			logger.Printf(
				"starting pattern %q: %d seconds at base %d rps", p, duration, rps,
			)

			sum := gen.Run(c.Context(), schedule)

			logger.Printf("traffic generation summary:")
			logger.Printf("  pattern: %s", p)
			logger.Printf("  duration: %.1fs", sum.Duration.Seconds())
			logger.Printf("  total requests: %d", sum.Requests)
			logger.Printf("  actual rps: %.1f", sum.ActualRPS)
			logger.Printf("  success rate: %.1f%%", sum.SuccessRate)
			logger.Printf("  avg response time: %s", sum.AvgLatency)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8000", "base URL of the service")
	cmd.Flags().StringVar(
		&pattern, "pattern", string(PatternRealistic),
		"traffic pattern (constant, spike, gradual, random, realistic)",
	)
	cmd.Flags().IntVar(&duration, "duration", 300, "duration in seconds")
	cmd.Flags().IntVar(&rps, "rps", 10, "base requests per second")
	cmd.Flags().StringVar(&endpoint, "endpoint", "/api/health/", "endpoint to hit")

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Fatalf("fatal: %s", err)
	}
}
