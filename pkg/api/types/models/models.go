package models

import (
	"github.com/autoserve/autoserve/pkg/domain"
	"github.com/autoserve/autoserve/pkg/utils/rfctime"
)

type Weights struct {
	CPU         float64 `json:"cpu"`
	Memory      float64 `json:"memory"`
	RequestRate float64 `json:"requestRate"`
	Intercept   float64 `json:"intercept"`
}

type Detail struct {
	Id        int             `json:"id"`
	Name      string          `json:"name"`
	Version   int             `json:"version"`
	Weights   Weights         `json:"weights"`
	MAE       float64         `json:"mae"`
	R2        float64         `json:"r2"`
	Accuracy  float64         `json:"accuracy"`
	Active    bool            `json:"active"`
	TrainedAt rfctime.RFC3339 `json:"trainedAt"`
}

func ComposeDetail(m domain.ScalingModel) Detail {
	return Detail{
		Id:      m.ID,
		Name:    m.Name,
		Version: m.Version,
		Weights: Weights{
			CPU:         m.Weights.CPU,
			Memory:      m.Weights.Memory,
			RequestRate: m.Weights.RequestRate,
			Intercept:   m.Weights.Intercept,
		},
		MAE:       m.MAE,
		R2:        m.R2,
		Accuracy:  m.Accuracy,
		Active:    m.Active,
		TrainedAt: rfctime.RFC3339(m.TrainedAt),
	}
}

func (d *Detail) Equal(o *Detail) bool {
	if d == nil || o == nil {
		return (d == nil) && (o == nil)
	}
	return d.Id == o.Id &&
		d.Name == o.Name &&
		d.Version == o.Version &&
		d.Weights == o.Weights &&
		d.MAE == o.MAE &&
		d.R2 == o.R2 &&
		d.Accuracy == o.Accuracy &&
		d.Active == o.Active &&
		d.TrainedAt.Equal(&o.TrainedAt)
}
