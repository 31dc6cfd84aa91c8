package db

import (
	"context"

	"github.com/autoserve/autoserve/pkg/domain"
)

type Interface interface {
	// Save stores a trained model and returns it with its id assigned.
	//
	// The stored model is inactive. Use Activate to switch to it.
	Save(ctx context.Context, m domain.ScalingModel) (domain.ScalingModel, error)

	// Active returns the model predictions are made with.
	//
	// When no model is active, it returns error wrapping kerr.ErrMissing.
	Active(ctx context.Context) (domain.ScalingModel, error)

	// Activate makes the model with id the only active one.
	//
	// When no model with the id exists, it returns error wrapping
	// kerr.ErrMissing.
	Activate(ctx context.Context, id int) error

	// UpdateAccuracy stores the running accuracy of the model with id.
	//
	// When no model with the id exists, it returns error wrapping
	// kerr.ErrMissing.
	UpdateAccuracy(ctx context.Context, id int, accuracy float64) error

	// List returns all stored models, newest first.
	List(ctx context.Context) ([]domain.ScalingModel, error)
}
