package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

func TestFormatWon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0원"},
		{in: 950, want: "950원"},
		{in: 25800, want: "25,800원"},
		{in: 2870.1, want: "2,870원"},
		{in: 1234567.5, want: "1,234,568원"},
		{in: -4950, want: "-4,950원"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatWon(tt.in), "input %v", tt.in)
	}
}

func TestSplitBreadcrumb(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"패션의류잡화", "여성패션"}, splitBreadcrumb("패션의류잡화 > 여성패션"))
	assert.Equal(t, []string{"뷰티"}, splitBreadcrumb(" >뷰티> "))
	assert.Nil(t, splitBreadcrumb(""))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "니트", truncate("니트", 10))
	assert.Equal(t, "여성 니...", truncate("여성 니트 가디건", 7))
}

func TestDisplayMode(t *testing.T) {
	t.Parallel()

	mode, err := displayMode("", domain.DisplayDetailed)
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayDetailed, mode)

	mode, err = displayMode("simple", domain.DisplayDetailed)
	require.NoError(t, err)
	assert.Equal(t, domain.DisplaySimple, mode)

	_, err = displayMode("fancy", domain.DisplaySimple)
	assert.ErrorContains(t, err, "invalid display mode")
}

func TestPrintCalculation(t *testing.T) {
	t.Parallel()

	c := engine.NewEngine(nil).Calculate(engine.CalcRequest{
		SalePrice:    25800,
		CategoryPath: []string{"여성패션"},
		Cost:         15000,
		Size:         fees.SizeMedium,
	})

	var simple bytes.Buffer
	require.NoError(t, printCalculation(&simple, 25800, &c, domain.DisplaySimple))
	assert.Contains(t, simple.String(), "25,800원")
	assert.Contains(t, simple.String(), "Net profit:")
	assert.Contains(t, simple.String(), "11.1%")
	assert.NotContains(t, simple.String(), "Shipping:")

	var detailed bytes.Buffer
	require.NoError(t, printCalculation(&detailed, 25800, &c, domain.DisplayDetailed))
	assert.Contains(t, detailed.String(), "10.5% (패션)")
	assert.Contains(t, detailed.String(), "2,079원")
	assert.Contains(t, detailed.String(), "2,871원")
	assert.Contains(t, detailed.String(), "4,950원")
}

func TestPrintFeeTable(t *testing.T) {
	t.Parallel()

	s := fees.DefaultSchedule()
	var buf bytes.Buffer
	require.NoError(t, printFeeTable(&buf, s.Brackets, s.Cells()))

	out := buf.String()
	assert.Contains(t, out, "EXTRA-SMALL")
	assert.Contains(t, out, "[20000,30000)")
	assert.Contains(t, out, "4950")
	assert.Contains(t, out, "[100000,∞)")
}

func TestStyleGrade(t *testing.T) {
	t.Parallel()

	for _, g := range []fees.Grade{fees.GradeExcellent, fees.GradeGood, fees.GradeCaution, fees.GradeDanger} {
		assert.Contains(t, styleGrade(g), g.Text())
	}
	assert.Equal(t, fees.Grade("unknown").Text(), styleGrade("unknown"))
}

func TestStyleProfit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2,870원", styleProfit(2870.1))
	assert.Contains(t, styleProfit(-1500), "-1,500원")
}
