package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autoserve/autoserve/cmd/autoserved/handlers"
	"github.com/autoserve/autoserve/pkg/auth"
	configs "github.com/autoserve/autoserve/pkg/configs/controller"
	connk8s "github.com/autoserve/autoserve/pkg/conn/k8s"
	"github.com/autoserve/autoserve/pkg/domain/autoserve"
	"github.com/autoserve/autoserve/pkg/echoutil"
	"github.com/autoserve/autoserve/pkg/metrics"
	"github.com/autoserve/autoserve/pkg/utils/filewatch"
	"github.com/autoserve/autoserve/pkg/utils/try"
)

const retrainModelName = "least-squares"

func main() {
	logger := log.Default()

	configPath := flag.String(
		"config", os.Getenv("AUTOSERVE_CONFIG"), "path to config file",
	)
	schemaRepo := flag.String(
		"schema-repo", os.Getenv("AUTOSERVE_SCHEMA"), "schema repository path",
	)
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	conf := try.To(configs.LoadControllerConfig(*configPath)).OrFatal(logger)
	cluster := conf.Cluster()

	// quit on config update and let the supervisor restart us with the new one.
	ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
	if err != nil {
		log.Fatalf("can not watch configration: %s", err)
	}
	defer cancel()
	context.AfterFunc(ctx, func() {
		log.Println("config file is updated. quit to restart server.")
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown by config update: %s", err)
		}
	})

	clientset := connk8s.ConnectToK8s()
	aserve := try.To(autoserve.New(
		ctx, cluster, clientset,
		autoserve.WithSchemaRepository(*schemaRepo),
	)).OrFatal(logger)

	signKey := ""
	if a := cluster.Auth(); a != nil {
		signKey = a.SignKey()
	}
	guard := auth.Middleware(signKey)

	scalingConf := cluster.Scaling()
	source := metrics.New(aserve.Prometheus())

	// handlers
	e.GET("/api/health/", handlers.HealthHandler(map[string]handlers.Probe{
		"database": func(ctx context.Context) error {
			_, err := aserve.Service().Database().List(ctx)
			return err
		},
		"prometheus": func(ctx context.Context) error {
			_, _, err := aserve.Prometheus().Query(ctx, "up", time.Now())
			return err
		},
		"kubernetes": func(ctx context.Context) error {
			_, err := clientset.Discovery().ServerVersion()
			return err
		},
	}))

	e.POST("/api/predict/", handlers.PredictHandler(
		aserve.Service().Database(),
		aserve.Scaling().Database(),
		aserve.Model().Database(),
		aserve.Scaling().Cluster(),
		source,
		scalingConf.Cooldown(),
		scalingConf.ConfidenceThreshold(),
	), guard)
	e.POST("/api/scale/", handlers.ScaleHandler(
		aserve.Service().Database(),
		aserve.Scaling().Database(),
		aserve.Scaling().Cluster(),
	), guard)
	e.GET("/api/scaling-events/", handlers.EventsHandler(aserve.Scaling().Database()))

	e.GET("/api/models/", handlers.ModelListHandler(aserve.Model().Database()))
	e.POST("/api/models/retrain/", handlers.RetrainHandler(
		aserve.Service().Database(),
		aserve.Metric().Database(),
		aserve.Model().Database(),
		retrainModelName,
		cluster.Retention(),
		scalingConf.MinReplicas(),
		scalingConf.MaxReplicas(),
	), guard)

	e.GET("/api/alerts/", handlers.AlertListHandler(aserve.Alert().Database()))
	e.PUT("/api/alerts/:id/resolve/", handlers.AlertResolveHandler(
		aserve.Alert().Database(), "id",
	), guard)

	e.GET("/api/services/", handlers.ServiceListHandler(aserve.Service().Database()))
	e.POST("/api/services/", handlers.ServiceRegisterHandler(
		aserve.Service().Database(),
	), guard)
	e.PUT("/api/services/:name/", handlers.ServiceUpdateHandler(
		aserve.Service().Database(), "name",
	), guard)

	// self-metrics exposition
	e.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))

	log.Println("registered routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", conf.Port())))
}
