// Package validate checks generated dashboards and rules for PromQL syntax
// errors and references to metrics rgm does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/rocketgrowth-margin/tools/dashgen/rules"
)

// histogramSuffixes are series suffixes that resolve to a histogram's base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses a PromQL expression and checks every selected metric name
// against known.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parse error: %v", where, err))
		return res
	}

	for _, name := range MetricNames(node) {
		if name == "" {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s: selector without a metric name", where))
			continue
		}
		if !isKnown(name, known) {
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s: unknown metric %q", where, name))
		}
	}
	return res
}

// MetricNames returns the metric name of every vector selector in node, in
// the order they appear.
func MetricNames(node parser.Node) []string {
	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard validates every Prometheus target on every panel, including
// panels nested in rows.
func Dashboard(d dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range d.Panels {
		if p.Panel != nil {
			res.merge(panel(*p.Panel, known))
		}
		if p.RowPanel != nil {
			for _, inner := range p.RowPanel.Panels {
				res.merge(panel(inner, known))
			}
		}
	}
	return res
}

// target is the subset of a Prometheus query target that validation reads.
type target struct {
	Expr  string `json:"expr"`
	RefID string `json:"refId"`
}

func panel(p dashboard.Panel, known map[string]bool) Result {
	var res Result

	title := "untitled panel"
	if p.Title != nil {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", title))
		return res
	}

	for i, q := range p.Targets {
		raw, err := json.Marshal(q)
		if err != nil {
			res.Errors = append(res.Errors,
				fmt.Sprintf("panel %q target %d: encoding: %v", title, i, err))
			continue
		}
		var t target
		if err := json.Unmarshal(raw, &t); err != nil || t.Expr == "" {
			res.Errors = append(res.Errors,
				fmt.Sprintf("panel %q target %d: missing expr", title, i))
			continue
		}
		res.merge(Expr(fmt.Sprintf("panel %q target %s", title, t.RefID), t.Expr, known))
	}
	return res
}

// Rules validates every rule expression in a PrometheusRule. Recording rule
// names must themselves be known so dashboards can reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			where := fmt.Sprintf("rule %s/%s", g.Name, name)

			if r.Record != "" && !known[r.Record] {
				res.Errors = append(res.Errors,
					fmt.Sprintf("%s: recording rule not listed in known metrics", where))
			}
			res.merge(Expr(where, r.Expr, known))
		}
	}
	return res
}
