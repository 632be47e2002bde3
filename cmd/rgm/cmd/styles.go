package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
)

// Colors degrade to plain text when stdout is not a terminal or NO_COLOR
// is set.
var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#12B76A", Dark: "#73F59F"}
	colorGood    = lipgloss.AdaptiveColor{Light: "#1570EF", Dark: "#84CAFF"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#DC6803", Dark: "#F79009"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#D92D20", Dark: "#F97066"}

	gradeStyles = map[fees.Grade]lipgloss.Style{
		fees.GradeExcellent: lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		fees.GradeGood:      lipgloss.NewStyle().Foreground(colorGood),
		fees.GradeCaution:   lipgloss.NewStyle().Foreground(colorWarning),
		fees.GradeDanger:    lipgloss.NewStyle().Bold(true).Foreground(colorDanger),
	}

	lossStyle = lipgloss.NewStyle().Foreground(colorDanger)
)

// styleGrade renders the grade's display text in its grade color.
func styleGrade(g fees.Grade) string {
	s, ok := gradeStyles[g]
	if !ok {
		return g.Text()
	}
	return s.Render(g.Text())
}

// styleProfit renders a won amount, in the danger color when negative.
func styleProfit(v float64) string {
	if v < 0 {
		return lossStyle.Render(formatWon(v))
	}
	return formatWon(v)
}
