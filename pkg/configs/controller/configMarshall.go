package controller

import (
	"fmt"
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs/controller.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type ControllerConfigMarshall struct {
	Port    int32                  `yaml:"port"`
	Cluster *ClusterConfigMarshall `yaml:"cluster"`
}

var _ Marshalled[*ControllerConfig] = &ControllerConfigMarshall{}

func (c *ControllerConfigMarshall) trySeal(path string) *ControllerConfig {
	return &ControllerConfig{
		port:    required(c.Port, path+".port"),
		cluster: nonnil(c.Cluster, path+".cluster").trySeal(path + ".cluster"),
	}
}

// Configuration of the managed cluster.
//
// This type is marshalling value and mutable.
// Consider to use immutable version, `ClusterConfig`.
// You can get `ClusterConfig` instance with `TrySeal()`.
type ClusterConfigMarshall struct {
	Namespace  string                  `yaml:"namespace"`
	Database   string                  `yaml:"database"`
	Prometheus string                  `yaml:"prometheus"`
	Scaling    *ScalingConfigMarshall  `yaml:"scaling,omitempty"`
	Alerting   *AlertingConfigMarshall `yaml:"alerting,omitempty"`
	Retention  string                  `yaml:"retention,omitempty"`
	Auth       *AuthConfigMarshall     `yaml:"auth,omitempty"`
}

func (cm *ClusterConfigMarshall) trySeal(path string) *ClusterConfig {
	scaling := cm.Scaling
	if scaling == nil {
		scaling = &ScalingConfigMarshall{}
	}
	alerting := cm.Alerting
	if alerting == nil {
		alerting = &AlertingConfigMarshall{}
	}
	retention := cm.Retention
	if retention == "" {
		retention = "168h"
	}

	var auth *AuthConfig
	if cm.Auth != nil {
		auth = cm.Auth.trySeal(path + ".auth")
	}

	return &ClusterConfig{
		namespace:  required(cm.Namespace, path+".namespace"),
		database:   required(cm.Database, path+".database"),
		prometheus: required(cm.Prometheus, path+".prometheus"),
		scaling:    scaling.trySeal(path + ".scaling"),
		alerting:   alerting.trySeal(path + ".alerting"),
		retention:  duration(retention, path+".retention"),
		auth:       auth,
	}
}

type ScalingConfigMarshall struct {
	Interval            string  `yaml:"interval,omitempty"`
	Cooldown            string  `yaml:"cooldown,omitempty"`
	ConfidenceThreshold float64 `yaml:"confidenceThreshold,omitempty"`
	MinReplicas         int     `yaml:"minReplicas,omitempty"`
	MaxReplicas         int     `yaml:"maxReplicas,omitempty"`
}

func (sm *ScalingConfigMarshall) trySeal(path string) *ScalingConfig {
	interval := sm.Interval
	if interval == "" {
		interval = "5m"
	}
	cooldown := sm.Cooldown
	if cooldown == "" {
		cooldown = "5m"
	}
	threshold := sm.ConfidenceThreshold
	if threshold == 0 {
		threshold = 0.7
	}
	if threshold < 0 || 1 < threshold {
		panic(fmt.Sprintf("%s.confidenceThreshold should be in [0, 1], but %f", path, threshold))
	}
	min := sm.MinReplicas
	if min == 0 {
		min = 1
	}
	max := sm.MaxReplicas
	if max == 0 {
		max = 10
	}
	if max < min {
		panic(fmt.Sprintf("%s.maxReplicas (%d) should not be less than minReplicas (%d)", path, max, min))
	}

	return &ScalingConfig{
		interval:            duration(interval, path+".interval"),
		cooldown:            duration(cooldown, path+".cooldown"),
		confidenceThreshold: threshold,
		minReplicas:         min,
		maxReplicas:         max,
	}
}

type AlertingConfigMarshall struct {
	CPUHigh       float64 `yaml:"cpuHigh,omitempty"`
	MemoryHigh    float64 `yaml:"memoryHigh,omitempty"`
	ErrorRateHigh float64 `yaml:"errorRateHigh,omitempty"`
	Webhook       string  `yaml:"webhook,omitempty"`
}

func (am *AlertingConfigMarshall) trySeal(path string) *AlertingConfig {
	cpu := am.CPUHigh
	if cpu == 0 {
		cpu = 80
	}
	memory := am.MemoryHigh
	if memory == 0 {
		memory = 85
	}
	errorRate := am.ErrorRateHigh
	if errorRate == 0 {
		errorRate = 5
	}

	return &AlertingConfig{
		cpuHigh:       cpu,
		memoryHigh:    memory,
		errorRateHigh: errorRate,
		webhook:       am.Webhook,
	}
}

type AuthConfigMarshall struct {
	SignKey string `yaml:"signKey"`
}

func (am *AuthConfigMarshall) trySeal(path string) *AuthConfig {
	return &AuthConfig{
		signKey: required(am.SignKey, path+".signKey"),
	}
}

func duration(v string, path string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s can not be parsed: %w", path, err))
	}
	return d
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
