package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

// RequestRate returns a timeseries panel showing the HTTP request rate.
func RequestRate() *timeseries.PanelBuilder {
	return Trend("Request Rate", "HTTP requests per second", "reqps").
		WithTarget(PromQuery(`rgm:http_requests:rate5m`, "req/s", "A"))
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// HTTP request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return WithQuantiles(
		Trend("Latency Percentiles", "HTTP request duration percentiles", "s"),
		"rgm_http_request_duration_seconds", "5m", 0.50, 0.95, 0.99,
	)
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return Trend("Error Rate %", "HTTP 5xx error rate as percentage of total requests", "percent").
		WithTarget(PromQuery(
			`rgm:http_errors:rate5m / rgm:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// RequestsByRoute returns a timeseries panel breaking the request rate down
// by route and status.
func RequestsByRoute() *timeseries.PanelBuilder {
	return Trend("Requests by Route", "HTTP requests per second by API route and status code", "reqps").
		WithTarget(PromQuery(
			SumRate("rgm_http_requests_total", "5m", "method", "path", "status"),
			"{{method}} {{path}} {{status}}", "A",
		)).
		WithTarget(PromQuery(`rgm:http_rate_limited:rate5m`, "rate limited", "B"))
}
