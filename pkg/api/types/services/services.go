package services

import (
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/utils/rfctime"
)

// Spec is the user-writable part of a managed service.
type Spec struct {
	Name        string `json:"name"`
	Namespace   string `json:"namespace,omitempty"`
	MinReplicas int    `json:"minReplicas,omitempty"`
	MaxReplicas int    `json:"maxReplicas,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

type Detail struct {
	Name        string          `json:"name"`
	Namespace   string          `json:"namespace"`
	MinReplicas int             `json:"minReplicas"`
	MaxReplicas int             `json:"maxReplicas"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt   rfctime.RFC3339 `json:"updatedAt"`
}

func ComposeDetail(s domain.Service) Detail {
	return Detail{
		Name:        s.Name,
		Namespace:   s.Namespace,
		MinReplicas: s.MinReplicas,
		MaxReplicas: s.MaxReplicas,
		Enabled:     s.Enabled,
		CreatedAt:   rfctime.RFC3339(s.CreatedAt),
		UpdatedAt:   rfctime.RFC3339(s.UpdatedAt),
	}
}

func (d *Detail) Equal(o *Detail) bool {
	if d == nil || o == nil {
		return (d == nil) && (o == nil)
	}
	return d.Name == o.Name &&
		d.Namespace == o.Namespace &&
		d.MinReplicas == o.MinReplicas &&
		d.MaxReplicas == o.MaxReplicas &&
		d.Enabled == o.Enabled &&
		d.CreatedAt.Equal(&o.CreatedAt) &&
		d.UpdatedAt.Equal(&o.UpdatedAt)
}
