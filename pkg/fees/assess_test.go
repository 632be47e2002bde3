package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssess_Grades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		margin float64
		want   Grade
	}{
		{margin: 45, want: GradeExcellent},
		{margin: 30, want: GradeExcellent},
		{margin: 29.99, want: GradeGood},
		{margin: 20, want: GradeGood},
		{margin: 19.9, want: GradeCaution},
		{margin: 10, want: GradeCaution},
		{margin: 9.99, want: GradeDanger},
		{margin: -15, want: GradeDanger},
	}

	for _, tt := range tests {
		a := Assess(tt.margin, 1, DefaultTargetMargin)
		assert.Equal(t, tt.want, a.Grade, "margin %v", tt.margin)
		assert.NotEmpty(t, a.Grade.Text())
	}
}

func TestAssess_Advice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		margin float64
		profit float64
		want   Advice
	}{
		{name: "healthy margin", margin: 25, profit: 5000, want: AdviceProceed},
		{name: "thin margin", margin: 12, profit: 1000, want: AdviceLowerCost},
		{name: "margin without profit", margin: 25, profit: 0, want: AdviceAvoid},
		{name: "loss", margin: -3, profit: -500, want: AdviceAvoid},
		{name: "below ten", margin: 9, profit: 100, want: AdviceAvoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := Assess(tt.margin, tt.profit, DefaultTargetMargin)
			assert.Equal(t, tt.want, a.Advice)
			assert.NotEmpty(t, a.Advice.Text())
		})
	}
}

func TestAssess_Target(t *testing.T) {
	t.Parallel()

	met := Assess(22, 100, 20)
	assert.True(t, met.TargetMet)
	assert.Zero(t, met.TargetGap)
	assert.Equal(t, 20.0, met.TargetMargin)

	unmet := Assess(11.5, 100, 25)
	assert.False(t, unmet.TargetMet)
	assert.InDelta(t, 13.5, unmet.TargetGap, 1e-9)

	exact := Assess(20, 100, 20)
	assert.True(t, exact.TargetMet)
}
