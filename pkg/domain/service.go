package domain

import "time"

// Service is an entry of the monitored-service registry.
//
// The scaling loop watches every enabled Service and keeps its Deployment's
// replica count within [MinReplicas, MaxReplicas].
type Service struct {
	Name        string
	Namespace   string
	MinReplicas int
	MaxReplicas int
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Service) Equal(o Service) bool {
	return s.Name == o.Name &&
		s.Namespace == o.Namespace &&
		s.MinReplicas == o.MinReplicas &&
		s.MaxReplicas == o.MaxReplicas &&
		s.Enabled == o.Enabled
}
