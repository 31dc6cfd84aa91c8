package controller

import "time"

type ControllerConfig struct {
	port    int32
	cluster *ClusterConfig
}

func (c *ControllerConfig) Port() int32 {
	return c.port
}

func (c *ControllerConfig) Cluster() *ClusterConfig {
	return c.cluster
}

// Configuration for the cluster the controller manages.
//
// to get `ClusterConfig` instance, use `ClusterConfigMarshall.TrySeal()` .
type ClusterConfig struct {
	namespace  string
	database   string
	prometheus string
	scaling    *ScalingConfig
	alerting   *AlertingConfig
	retention  time.Duration
	auth       *AuthConfig
}

// k8s namespace where the managed services are deployed.
func (c *ClusterConfig) Namespace() string {
	return c.namespace
}

// Connection string for database.
func (c *ClusterConfig) Database() string {
	return c.database
}

// Base URL of the Prometheus server to query metrics from.
func (c *ClusterConfig) Prometheus() string {
	return c.prometheus
}

func (c *ClusterConfig) Scaling() *ScalingConfig {
	return c.scaling
}

func (c *ClusterConfig) Alerting() *AlertingConfig {
	return c.alerting
}

// How long metric snapshots and resolved alerts are kept. default = 168h
func (c *ClusterConfig) Retention() time.Duration {
	return c.retention
}

// Auth is nil when the API runs without token verification.
func (c *ClusterConfig) Auth() *AuthConfig {
	return c.auth
}

type ScalingConfig struct {
	interval            time.Duration
	cooldown            time.Duration
	confidenceThreshold float64
	minReplicas         int
	maxReplicas         int
}

// How often the scaling loop evaluates each service. default = 5m
func (s *ScalingConfig) Interval() time.Duration {
	return s.interval
}

// Minimum time between executed scalings of a single service. default = 5m
func (s *ScalingConfig) Cooldown() time.Duration {
	return s.cooldown
}

// Predictions below this confidence are recorded but not executed. default = 0.7
func (s *ScalingConfig) ConfidenceThreshold() float64 {
	return s.confidenceThreshold
}

func (s *ScalingConfig) MinReplicas() int {
	return s.minReplicas
}

func (s *ScalingConfig) MaxReplicas() int {
	return s.maxReplicas
}

type AlertingConfig struct {
	cpuHigh       float64
	memoryHigh    float64
	errorRateHigh float64
	webhook       string
}

// CPU usage (percent) above which an alert fires. default = 80
func (a *AlertingConfig) CPUHigh() float64 {
	return a.cpuHigh
}

// Memory usage (percent) above which an alert fires. default = 85
func (a *AlertingConfig) MemoryHigh() float64 {
	return a.memoryHigh
}

// Error rate (percent of 5xx) above which an alert fires. default = 5
func (a *AlertingConfig) ErrorRateHigh() float64 {
	return a.errorRateHigh
}

// Webhook is empty when notifications are disabled.
func (a *AlertingConfig) Webhook() string {
	return a.webhook
}

type AuthConfig struct {
	signKey string
}

// HS256 key used to sign and verify API tokens.
func (a *AuthConfig) SignKey() string {
	return a.signKey
}
