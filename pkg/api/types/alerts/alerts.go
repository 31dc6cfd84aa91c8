package alerts

import (
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/utils/pointer"
	"github.com/autoserve/autoserve/pkg/utils/rfctime"
)

type Detail struct {
	Id         int              `json:"id"`
	Service    string           `json:"service"`
	Type       string           `json:"type"`
	Severity   string           `json:"severity"`
	Value      float64          `json:"value"`
	Threshold  float64          `json:"threshold"`
	Message    string           `json:"message"`
	Status     string           `json:"status"`
	CreatedAt  rfctime.RFC3339  `json:"createdAt"`
	ResolvedAt *rfctime.RFC3339 `json:"resolvedAt,omitempty"`
}

func ComposeDetail(a domain.Alert) Detail {
	var resolvedAt *rfctime.RFC3339
	if a.ResolvedAt != nil {
		resolvedAt = pointer.Ref(rfctime.RFC3339(*a.ResolvedAt))
	}
	return Detail{
		Id:         a.ID,
		Service:    a.ServiceName,
		Type:       string(a.Type),
		Severity:   string(a.Severity),
		Value:      a.Value,
		Threshold:  a.Threshold,
		Message:    a.Message,
		Status:     string(a.Status),
		CreatedAt:  rfctime.RFC3339(a.CreatedAt),
		ResolvedAt: resolvedAt,
	}
}

func (d *Detail) Equal(o *Detail) bool {
	if d == nil || o == nil {
		return (d == nil) && (o == nil)
	}
	return d.Id == o.Id &&
		d.Service == o.Service &&
		d.Type == o.Type &&
		d.Severity == o.Severity &&
		d.Value == o.Value &&
		d.Threshold == o.Threshold &&
		d.Message == o.Message &&
		d.Status == o.Status &&
		d.CreatedAt.Equal(&o.CreatedAt) &&
		d.ResolvedAt.Equal(o.ResolvedAt)
}
