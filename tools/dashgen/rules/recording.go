package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("rgm-recording-rules", RuleGroup{
		Name: "rgm-recording",
		Rules: []Rule{
			record("rgm:http_requests:rate5m",
				`sum(rate(rgm_http_requests_total[5m]))`),
			record("rgm:http_errors:rate5m",
				`sum(rate(rgm_http_requests_total{status=~"5.."}[5m]))`),
			record("rgm:http_rate_limited:rate5m",
				`sum(rate(rgm_http_rate_limited_total[5m]))`),
			record("rgm:calculations:rate5m",
				`sum(rate(rgm_calculations_total[5m]))`),
			record("rgm:category_fallback:rate5m",
				`sum(rate(rgm_category_fallback_total[5m]))`),
			record("rgm:assessments_danger:ratio1h",
				`sum(rate(rgm_assessments_total{grade="danger"}[1h]))`+
					` / sum(rate(rgm_assessments_total[1h]))`),
		},
	})
}
