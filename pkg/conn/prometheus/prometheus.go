package prometheus

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// Querier is the subset of the Prometheus v1 API used here.
//
// When you need more methods only `v1.API` has, declare them.
type Querier interface {
	// evaluate an instant query at the given timestamp.
	Query(ctx context.Context, query string, ts time.Time, opts ...v1.Option) (model.Value, v1.Warnings, error)
}

var _ Querier = (v1.API)(nil)

// New builds a Querier talking to the Prometheus server at address.
func New(address string) (Querier, error) {
	client, err := api.NewClient(api.Config{Address: address})
	if err != nil {
		return nil, err
	}
	return v1.NewAPI(client), nil
}
