package rules

// AlertRules returns a PrometheusRule CR containing alert rules for rgm
// operational monitoring.
func AlertRules() PrometheusRule {
	return newPrometheusRule("rgm-alerts", RuleGroup{
		Name: "rgm-alerts",
		Rules: []Rule{
			alert("RgmDown", `absent(up{job="rgm"})`, "2m", SeverityCritical,
				"Rocket Growth margin API is down",
				"The rgm job has been absent for more than 2 minutes."),
			alert("RgmReadinessDown", `rgm_readyz_up == 0`, "2m", SeverityCritical,
				"Rocket Growth margin API readiness check is failing",
				"The fee schedule failed validation and the readiness probe has reported not-ready for more than 2 minutes."),
			alert("RgmHighErrorRate", `rgm:http_errors:rate5m / rgm:http_requests:rate5m > 0.05`, "5m", SeverityWarning,
				"High HTTP error rate on the margin API",
				"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
			alert("RgmPanics", `increase(rgm_http_panics_total[15m]) > 0`, "1m", SeverityWarning,
				"Handlers are panicking",
				"At least one request handler panicked in the last 15 minutes. Check the server log for the stack trace and request_id."),
			alert("RgmRateLimiting", `rgm:http_rate_limited:rate5m > 1`, "10m", SeverityWarning,
				"Clients are being rate limited",
				"More than one request per second has been rejected with 429 for 10 minutes. Raise server.rate_limit or find the noisy client."),
			alert("RgmCategoryFallbacks", `rgm:category_fallback:rate5m / rgm:calculations:rate5m > 0.5`, "30m", SeverityInfo,
				"Most category paths are matching no keyword",
				"Over half of calculations are using the default commission rate. The keyword table may need new entries."),
		},
	})
}
