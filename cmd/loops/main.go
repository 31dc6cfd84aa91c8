package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/autoserve/autoserve/cmd/loops/recurring"
	configs "github.com/autoserve/autoserve/pkg/configs/controller"
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/domain/autoserve"
	"github.com/autoserve/autoserve/pkg/utils/args"
	"github.com/autoserve/autoserve/pkg/utils/filewatch"
	"github.com/autoserve/autoserve/pkg/utils/try"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	// call cancel() when this function exits
	defer cancel()

	// define command line flags
	//-- path to config file
	pconfig := flag.String(
		"config", os.Getenv("AUTOSERVE_CONFIG"), "path to config file",
	)
	pSchemaRepo := flag.String(
		"schema-repo", os.Getenv("AUTOSERVE_SCHEMA"), "schema repository path",
	)
	//-- which loop type to run
	loopType := args.Parser(domain.AsLoopType)
	flag.Var(loopType, "type", "one of loop type")
	//-- loop policy
	policy := args.Parser(recurring.ParsePolicy)
	flag.Var(
		policy, "policy",
		`loop policy (syntax: forever[:COOLDOWN]|backlog).`+
			` "forever[:COOLDOWN]" = run forever until error. When backlog is over, `+
			`wait COOLDOWN (optional duration. default: 0) as inteval.`+
			` "backlog" = run until error or backlog is over.`+
			` (default: the loop's configured cadence)`,
	)
	// parse command line flags
	flag.Parse()

	{
		// watch config. restart (by the orchestrator) picks up changes.
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			logger.Fatal(err)
		}
		defer cancel()
		ctx = wctx
	}

	conf := try.To(configs.LoadControllerConfig(*pconfig)).OrFatal(logger)

	aserve := try.To(autoserve.Default(
		ctx, conf.Cluster(),
		autoserve.WithSchemaRepository(*pSchemaRepo),
	)).OrFatal(logger)

	pol := policy.Value()
	if !policy.IsSet() {
		pol = defaultPolicy(loopType.Value(), conf.Cluster().Scaling().Interval())
	}

	logger.Printf(
		`start loop "%s" /w policy "%s"`,
		loopType.Value().String(), pol.String(),
	)

	err := StartLoop(
		ctx, logger, aserve,
		LoopManifest{
			Type:   loopType.Value(),
			Policy: recurring.UntilError(pol),
		},
	)

	if err == nil {
		return
	} else if errors.Is(err, context.Canceled) {
		logger.Fatal(err, "(loop context is cancelled by:", context.Cause(ctx), ")")
	}

	logger.Fatal(err)
}
