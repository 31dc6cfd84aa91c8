package autoserve

import (
	"context"

	conf "github.com/autoserve/autoserve/pkg/configs/controller"
	connk8s "github.com/autoserve/autoserve/pkg/conn/k8s"
	connprom "github.com/autoserve/autoserve/pkg/conn/prometheus"
	"github.com/autoserve/autoserve/pkg/domain/alert"
	"github.com/autoserve/autoserve/pkg/domain/autoserve/db/postgres"
	"github.com/autoserve/autoserve/pkg/domain/metric"
	"github.com/autoserve/autoserve/pkg/domain/model"
	"github.com/autoserve/autoserve/pkg/domain/scaling"
	scalingk8s "github.com/autoserve/autoserve/pkg/domain/scaling/k8s"
	"github.com/autoserve/autoserve/pkg/domain/schema"
	"github.com/autoserve/autoserve/pkg/domain/service"
	"k8s.io/client-go/kubernetes"
)

type AutoServe interface {
	Config() *conf.ClusterConfig

	Service() service.Interface
	Metric() metric.Interface
	Scaling() scaling.Interface
	Model() model.Interface
	Alert() alert.Interface

	Schema() schema.Interface
	Prometheus() connprom.Querier
}

type autoserve struct {
	config *conf.ClusterConfig

	service service.Interface
	metric  metric.Interface
	scaling scaling.Interface
	model   model.Interface
	alert   alert.Interface

	schema     schema.Interface
	prometheus connprom.Querier
}

// Default connects to the cluster the process runs in (or the local kubeconfig).
func Default(
	ctx context.Context,
	config *conf.ClusterConfig,
	options ...Option,
) (AutoServe, error) {
	clientset := connk8s.ConnectToK8s()
	return New(ctx, config, clientset, options...)
}

func New(
	ctx context.Context,
	config *conf.ClusterConfig,
	clientset *kubernetes.Clientset,
	options ...Option,
) (AutoServe, error) {
	opt := &_options{}
	for _, o := range options {
		o(opt)
	}

	pg, err := postgres.New(ctx, config.Database(), opt.pg...)
	if err != nil {
		return nil, err
	}

	prom, err := connprom.New(config.Prometheus())
	if err != nil {
		return nil, err
	}

	k8sclient := connk8s.WrapK8sClient(clientset)
	scaler := scalingk8s.New(k8sclient)

	return &autoserve{
		config: config,

		service: service.New(pg.Service()),
		metric:  metric.New(pg.Metric()),
		scaling: scaling.New(pg.Scaling(), scaler),
		model:   model.New(pg.Model()),
		alert:   alert.New(pg.Alert()),

		schema:     schema.New(pg.Schema()),
		prometheus: prom,
	}, nil
}

type Option func(*_options)

type _options struct {
	pg []postgres.Option
}

func WithSchemaRepository(repository string) Option {
	return func(o *_options) {
		o.pg = append(o.pg, postgres.WithSchemaRepository(repository))
	}
}

func (a *autoserve) Config() *conf.ClusterConfig {
	return a.config
}

func (a *autoserve) Service() service.Interface {
	return a.service
}

func (a *autoserve) Metric() metric.Interface {
	return a.metric
}

func (a *autoserve) Scaling() scaling.Interface {
	return a.scaling
}

func (a *autoserve) Model() model.Interface {
	return a.model
}

func (a *autoserve) Alert() alert.Interface {
	return a.alert
}

func (a *autoserve) Schema() schema.Interface {
	return a.schema
}

func (a *autoserve) Prometheus() connprom.Querier {
	return a.prometheus
}
