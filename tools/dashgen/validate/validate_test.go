package validate

import (
	"testing"

	"github.com/prometheus/prometheus/promql/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rocketgrowth-margin/tools/dashgen/rules"
)

var known = map[string]bool{
	"rgm_http_requests_total":  true,
	"rgm_margin_rate_percent":  true,
	"rgm:http_requests:rate5m": true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		expr      string
		wantErr   string
		wantWarns int
	}{
		{
			name: "known counter",
			expr: `sum(rate(rgm_http_requests_total{status=~"5.."}[5m]))`,
		},
		{
			name: "histogram bucket resolves to base",
			expr: `histogram_quantile(0.5, sum(rate(rgm_margin_rate_percent_bucket[5m])) by (le))`,
		},
		{
			name: "recording rule",
			expr: `rgm:http_requests:rate5m * 100`,
		},
		{
			name:    "unknown metric",
			expr:    `rate(rgm_widgets_total[5m])`,
			wantErr: `unknown metric "rgm_widgets_total"`,
		},
		{
			name:    "syntax error",
			expr:    `sum(rate(rgm_http_requests_total[5m])`,
			wantErr: "parse error",
		},
		{
			name:      "nameless selector",
			expr:      `{job="rgm"}`,
			wantWarns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Expr("test", tt.expr, known)
			if tt.wantErr != "" {
				require.False(t, res.Ok())
				assert.Contains(t, res.Errors[0], tt.wantErr)
				return
			}
			assert.True(t, res.Ok(), "errors: %v", res.Errors)
			assert.Len(t, res.Warnings, tt.wantWarns)
		})
	}
}

func TestMetricNames(t *testing.T) {
	t.Parallel()

	node, err := parser.ParseExpr(`rgm_a / (rgm_b + rgm_a)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"rgm_a", "rgm_b", "rgm_a"}, MetricNames(node))
}

func TestRules(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Spec: rules.PrometheusRuleSpec{
			Groups: []rules.RuleGroup{{
				Name: "g",
				Rules: []rules.Rule{
					{Record: "rgm:http_requests:rate5m", Expr: `sum(rate(rgm_http_requests_total[5m]))`},
					{Record: "rgm:unlisted:rate5m", Expr: `sum(rate(rgm_http_requests_total[5m]))`},
					{Alert: "Broken", Expr: `rgm_missing > 0`},
				},
			}},
		},
	}

	res := Rules(cr, known)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "rule g/rgm:unlisted:rate5m")
	assert.Contains(t, res.Errors[1], `rule g/Broken: unknown metric "rgm_missing"`)
}
