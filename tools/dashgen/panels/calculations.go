package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CalculationsBySize returns a timeseries panel showing fee calculations per
// second split by logistics size tier.
func CalculationsBySize() *timeseries.PanelBuilder {
	return Trend("Calculations by Size", "Fee calculations per second by logistics size tier", "ops").
		WithTarget(PromQuery(SumRate("rgm_calculations_total", "5m", "size"), "{{size}}", "A")).
		FillOpacity(20).
		LineWidth(1)
}

// MarginPercentiles returns a timeseries panel showing the p10, p50 and p90
// of computed margin rates.
func MarginPercentiles() *timeseries.PanelBuilder {
	return WithQuantiles(
		Trend("Margin Rate Percentiles", "Margin rate percentiles across calculations (percent)", "percent"),
		"rgm_margin_rate_percent", "15m", 0.10, 0.50, 0.90,
	).Legend(TableLegend("mean", "min", "max"))
}

// MarginDistribution returns a bar gauge panel showing how margin rates fall
// across histogram buckets.
func MarginDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Margin Distribution").
		Description("Calculations per margin rate bucket over the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Selector("rgm_margin_rate_percent_bucket")+`[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// AssessmentsByGrade returns a timeseries panel showing product analyses per
// second by margin grade.
func AssessmentsByGrade() *timeseries.PanelBuilder {
	return Trend("Assessments by Grade", "Product analyses per second by margin grade", "ops").
		WithTarget(PromQuery(SumRate("rgm_assessments_total", "5m", "grade"), "{{grade}}", "A")).
		FillOpacity(20).
		LineWidth(1)
}

// DangerShare returns a stat panel showing the share of analyses graded
// danger over the last hour.
func DangerShare() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Danger Share (1h)").
		Description("Share of product analyses graded danger").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth * 2).
		WithTarget(PromQuery(`rgm:assessments_danger:ratio1h * 100`, "", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(30, 50)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// CategoryFallbackStat returns a stat panel showing the rate of category
// paths that fell back to the default commission rate.
func CategoryFallbackStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Category Fallbacks").
		Description("Category paths per second matching no keyword (default rate applied)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth * 2).
		WithTarget(PromQuery(`rgm:category_fallback:rate5m`, "", "A")).
		Unit("ops").
		Thresholds(ThresholdsGreenYellowRed(0.5, 2)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
