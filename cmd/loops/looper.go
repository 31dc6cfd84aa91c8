package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/recurring"
	"github.com/autoserve/autoserve/cmd/loops/tasks/alerting"
	"github.com/autoserve/autoserve/cmd/loops/tasks/housekeeping"
	"github.com/autoserve/autoserve/cmd/loops/tasks/modelcheck"
	"github.com/autoserve/autoserve/cmd/loops/tasks/retrain"
	"github.com/autoserve/autoserve/cmd/loops/tasks/scaling"
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/domain/autoserve"
	"github.com/autoserve/autoserve/pkg/loop"
	"github.com/autoserve/autoserve/pkg/metrics"
	"github.com/autoserve/autoserve/pkg/notify"
)

type LoggerOptions func(*log.Logger) *log.Logger

func byLogger(l *log.Logger, opt ...LoggerOptions) *log.Logger {
	for _, o := range opt {
		l = o(l)
	}
	return l
}

func Copied() LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		return log.New(l.Writer(), l.Prefix(), l.Flags())
	}
}

func WithPrefix(pre string) LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		l.SetPrefix(pre)
		return l
	}
}

func WithTimestamp() LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		l.SetFlags(l.Flags() | log.Ldate | log.Ltime | log.Lmicroseconds)
		return l
	}
}

// Wrapper for monitoring loop tasks
//
//	Log the start and end of each time a task is executed. Essentially, it executes a task.
func monitor[T any](logger *log.Logger, task loop.Task[T]) loop.Task[T] {
	// counter for execution of the task
	var counter uint64
	return func(ctx context.Context, t T) (ret T, next loop.Next) {
		// func() capture the 'counter' variable
		counter += 1
		timestamp := time.Now()

		logger.Printf("task start: #0x%X: ", counter)

		// log at the end of the task
		defer func() {
			logger.Printf(
				"task end: #0x%X (takes %s): %s",
				counter, time.Since(timestamp), next,
			)
		}()

		// execute the task specified by the argument
		ret, next = task(ctx, t)
		return
	}
}

// Manifest for starting a loop, which determines how the loop should behave.
type LoopManifest struct {
	// Which loop to run
	Type domain.LoopType

	// Policy for the looping
	Policy recurring.Policy
}

func StartScalingLoop(
	ctx context.Context,
	logger *log.Logger,
	aserve autoserve.AutoServe,
	manifest LoopManifest,
) error {
	conf := aserve.Config()
	_, err := loop.Start(
		ctx, scaling.Seed(),
		monitor(
			byLogger(logger, Copied(), WithPrefix("[scaling loop]")),
			scaling.Task(
				aserve.Service().Database(),
				aserve.Metric().Database(),
				aserve.Scaling().Database(),
				aserve.Model().Database(),
				aserve.Scaling().Cluster(),
				metrics.New(aserve.Prometheus()),
				conf.Scaling().Cooldown(),
				conf.Scaling().ConfidenceThreshold(),
			).Applied(manifest.Policy),
		),
	)
	return err
}

func StartAlertingLoop(
	ctx context.Context,
	logger *log.Logger,
	aserve autoserve.AutoServe,
	manifest LoopManifest,
) error {
	conf := aserve.Config().Alerting()

	var notifier notify.Notifier = notify.None{}
	if url := conf.Webhook(); url != "" {
		notifier = notify.Webhook{URL: url}
	}

	_, err := loop.Start(
		ctx, alerting.Seed(),
		monitor(
			byLogger(logger, Copied(), WithPrefix("[alerting loop]")),
			alerting.Task(
				aserve.Service().Database(),
				aserve.Alert().Database(),
				metrics.New(aserve.Prometheus()),
				notifier,
				alerting.Thresholds{
					CPUHigh:       conf.CPUHigh(),
					MemoryHigh:    conf.MemoryHigh(),
					ErrorRateHigh: conf.ErrorRateHigh(),
				},
			).Applied(manifest.Policy),
		),
	)
	return err
}

func StartRetrainLoop(
	ctx context.Context,
	logger *log.Logger,
	aserve autoserve.AutoServe,
	manifest LoopManifest,
) error {
	conf := aserve.Config()
	_, err := loop.Start(
		ctx, retrain.Seed(),
		monitor(
			byLogger(logger, Copied(), WithPrefix("[retrain loop]")),
			retrain.Task(
				aserve.Service().Database(),
				aserve.Metric().Database(),
				aserve.Model().Database(),
				conf.Retention(),
				conf.Scaling().MinReplicas(),
				conf.Scaling().MaxReplicas(),
			).Applied(manifest.Policy),
		),
	)
	return err
}

func StartModelCheckLoop(
	ctx context.Context,
	logger *log.Logger,
	aserve autoserve.AutoServe,
	manifest LoopManifest,
) error {
	_, err := loop.Start(
		ctx, modelcheck.Seed(),
		monitor(
			byLogger(logger, Copied(), WithPrefix("[modelcheck loop]")),
			modelcheck.Task(
				aserve.Service().Database(),
				aserve.Scaling().Database(),
				aserve.Model().Database(),
				aserve.Scaling().Cluster(),
				modelcheck.DefaultWindow,
			).Applied(manifest.Policy),
		),
	)
	return err
}

func StartHousekeepingLoop(
	ctx context.Context,
	logger *log.Logger,
	aserve autoserve.AutoServe,
	manifest LoopManifest,
) error {
	conf := aserve.Config()
	_, err := loop.Start(
		ctx, housekeeping.Seed(),
		monitor(
			byLogger(logger, Copied(), WithPrefix("[housekeeping loop]")),
			housekeeping.Task(
				aserve.Metric().Database(),
				aserve.Scaling().Database(),
				aserve.Alert().Database(),
				conf.Retention(),
			).Applied(manifest.Policy),
		),
	)
	return err
}

// defaultPolicy is the cadence a loop runs at when no -policy is given.
//
// The scaling and alerting loops follow the configured scaling interval;
// the model check runs once per accuracy window; retraining and
// housekeeping are daily.
func defaultPolicy(t domain.LoopType, scalingInterval time.Duration) recurring.Policy {
	switch t {
	case domain.Scaling, domain.Alerting:
		return recurring.Forever(scalingInterval)
	case domain.ModelCheck:
		return recurring.Forever(modelcheck.DefaultWindow)
	case domain.Retrain, domain.Housekeeping:
		return recurring.Forever(24 * time.Hour)
	}
	return recurring.Forever(0)
}

// StartLoop dispatches to the loop named by the manifest and blocks
// until it stops.
func StartLoop(
	ctx context.Context,
	logger *log.Logger,
	aserve autoserve.AutoServe,
	manifest LoopManifest,
) error {
	switch manifest.Type {
	case domain.Scaling:
		return StartScalingLoop(ctx, logger, aserve, manifest)
	case domain.Alerting:
		return StartAlertingLoop(ctx, logger, aserve, manifest)
	case domain.Retrain:
		return StartRetrainLoop(ctx, logger, aserve, manifest)
	case domain.ModelCheck:
		return StartModelCheckLoop(ctx, logger, aserve, manifest)
	case domain.Housekeeping:
		return StartHousekeepingLoop(ctx, logger, aserve, manifest)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownLoopType, manifest.Type)
	}
}
