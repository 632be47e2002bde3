// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/rocketgrowth-margin/tools/dashgen/panels"
)

// BuildOverview constructs the RGM Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("RGM Overview").
		Uid("rgm-overview").
		Tags([]string{"rgm", "rocketgrowth-margin"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.RateLimitedStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RequestsByRoute()))

	b.WithRow(dashboard.NewRowBuilder("Calculations").
		WithPanel(panels.CalculationsBySize()).
		WithPanel(panels.MarginPercentiles()).
		WithPanel(panels.MarginDistribution()).
		WithPanel(panels.CategoryFallbackStat()))

	b.WithRow(dashboard.NewRowBuilder("Assessments").
		WithPanel(panels.AssessmentsByGrade()).
		WithPanel(panels.DangerShare()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
