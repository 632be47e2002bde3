package main

import "errors"

// KnownMetrics is the set of metric names exported by rgm plus recording
// rule names referenced in dashboards and alerts. Histogram series
// (_bucket, _sum, _count) resolve to their base name.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"rgm_http_request_duration_seconds": true,
	"rgm_http_requests_total":           true,
	"rgm_http_rate_limited_total":       true,
	"rgm_http_panics_total":             true,

	// Health metrics.
	"rgm_healthz_up": true,
	"rgm_readyz_up":  true,

	// Calculation metrics.
	"rgm_calculations_total":      true,
	"rgm_category_fallback_total": true,
	"rgm_margin_rate_percent":     true,
	"rgm_assessments_total":       true,

	// Recording rules.
	"rgm:http_requests:rate5m":       true,
	"rgm:http_errors:rate5m":         true,
	"rgm:http_rate_limited:rate5m":   true,
	"rgm:calculations:rate5m":        true,
	"rgm:category_fallback:rate5m":   true,
	"rgm:assessments_danger:ratio1h": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
	// PlainRules writes rule groups without the PrometheusRule CR envelope.
	PlainRules bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
