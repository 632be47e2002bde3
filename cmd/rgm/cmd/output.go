package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// formatWon renders an amount rounded to the won with thousands separators.
func formatWon(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String() + "원"
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func printCalculation(
	w io.Writer,
	salePrice float64,
	c *engine.Calculation,
	mode domain.DisplayMode,
) error {
	r := &c.Result
	tw := newTabWriter(w)
	tw.writef("Sale price:\t%s\n", formatWon(salePrice))
	if mode == domain.DisplayDetailed {
		rate := formatPercent(r.CommissionRate * 100)
		if c.CategoryKeyword != "" {
			rate += " (" + c.CategoryKeyword + ")"
		}
		tw.writef("Commission rate:\t%s\n", rate)
		tw.writef("Sales commission:\t%s\n", formatWon(r.SalesCommission))
		tw.writef("VAT:\t%s\n", formatWon(r.VAT))
		tw.writef("Total sales fee:\t%s\n", formatWon(r.TotalSalesFee))
		tw.writef("Size:\t%s (%s)\n", r.Size, r.Size.Label())
		tw.writef("Inbound/outbound:\t%s\n", formatWon(float64(r.LogisticsInbound)))
		tw.writef("Shipping:\t%s\n", formatWon(float64(r.LogisticsShipping)))
		tw.writef("Total logistics fee:\t%s\n", formatWon(float64(r.TotalLogisticsFee)))
		tw.writef("Cost:\t%s\n", formatWon(r.Cost))
		tw.writef("Extra cost:\t%s\n", formatWon(r.ExtraCost))
	}
	tw.writef("Total fee:\t%s\n", formatWon(r.TotalFee))
	tw.writef("Total cost:\t%s\n", formatWon(r.TotalCost))
	tw.writef("Net profit:\t%s\n", styleProfit(r.NetProfit))
	tw.writef("Margin:\t%s\n", formatPercent(r.MarginRate))
	tw.writef("Max purchase price:\t%s\n", formatWon(r.MaxPurchasePrice))
	tw.writef("Recommended max cost (%s):\t%s\n",
		formatPercent(c.TargetMarginRate), formatWon(c.RecommendedMaxCost))
	return tw.finish()
}

func printAnalysis(w io.Writer, a *engine.Analysis) error {
	tw := newTabWriter(w)
	if a.Title != "" {
		tw.writef("Product:\t%s\n", truncate(a.Title, 60))
	}
	tw.writef("Category:\t%s (%s)\n", a.Category.Keyword, formatPercent(a.Category.Rate*100))
	size := fmt.Sprintf("%s (%s)", a.Size, a.SizeLabel)
	if a.SizeRecommended {
		size += " recommended"
	}
	tw.writef("Size:\t%s\n", size)
	if a.CostEstimated {
		tw.writef("Cost:\t%s estimated\n", formatWon(a.Result.Cost))
	}
	if err := tw.finish(); err != nil {
		return err
	}

	c := engine.Calculation{
		Result:             a.Result,
		CategoryKeyword:    a.Category.Keyword,
		TargetMarginRate:   a.Preferences.TargetMarginRate,
		RecommendedMaxCost: a.RecommendedMaxCost,
	}
	if err := printCalculation(w, a.SalePrice, &c, a.Preferences.DisplayMode); err != nil {
		return err
	}

	tw = newTabWriter(w)
	tw.writef("Grade:\t%s\n", styleGrade(a.Assessment.Grade))
	tw.writef("Advice:\t%s\n", a.Assessment.Advice.Text())
	if !a.Assessment.TargetMet {
		tw.writef("Below target by:\t%s\n", formatPercent(a.Assessment.TargetGap))
	}
	for _, warn := range a.Warnings {
		tw.writef("Warning:\t%s\n", warn)
	}
	return tw.finish()
}

func printFeeTable(w io.Writer, brackets []fees.PriceBracket, cells []fees.FeeCell) error {
	tw := newTabWriter(w)
	tw.writef("SALE PRICE")
	for _, size := range fees.SizeTiers {
		tw.writef("\t%s", strings.ToUpper(string(size)))
	}
	tw.writef("\n")

	cols := len(fees.SizeTiers)
	for i, b := range brackets {
		tw.writef("%s", b)
		for j := range cols {
			k := i*cols + j
			if k >= len(cells) {
				tw.writef("\t-")
				continue
			}
			tw.writef("\t%d", cells[k].Total)
		}
		tw.writef("\n")
	}
	return tw.finish()
}

func printFeeCell(w io.Writer, c *fees.FeeCell) error {
	tw := newTabWriter(w)
	tw.writef("Bracket:\t%s\n", c.Bracket)
	tw.writef("Size:\t%s (%s)\n", c.Size, c.Label)
	tw.writef("Base fee:\t%s\n", formatWon(float64(c.Base)))
	tw.writef("Total (VAT incl.):\t%s\n", formatWon(float64(c.Total)))
	tw.writef("Inbound/outbound:\t%s\n", formatWon(float64(c.Inbound)))
	tw.writef("Shipping:\t%s\n", formatWon(float64(c.Shipping)))
	return tw.finish()
}

func printCategory(w io.Writer, m *engine.CategoryMatch) error {
	tw := newTabWriter(w)
	tw.writef("Keyword:\t%s\n", m.Keyword)
	tw.writef("Commission rate:\t%s\n", formatPercent(m.Rate*100))
	tw.writef("Matched:\t%v\n", m.Matched)
	tw.writef("Typical size:\t%s (%s)\n", m.RecommendedSize, m.RecommendedSize.Label())
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// splitBreadcrumb splits a ">"-joined category path, dropping blanks.
func splitBreadcrumb(s string) []string {
	var path []string
	for _, part := range strings.Split(s, ">") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	return path
}
