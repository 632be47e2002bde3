package engine

import (
	"github.com/donaldgifford/rocketgrowth-margin/internal/metrics"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

// CalcRequest is a direct fee calculation. When CommissionRate is nil the
// rate is resolved from CategoryPath. An empty Size is charged as medium.
type CalcRequest struct {
	SalePrice        float64
	CommissionRate   *float64
	CategoryPath     []string
	Cost             float64
	ExtraCost        float64
	Size             fees.SizeTier
	TargetMarginRate *float64
}

// Calculation is a fee breakdown plus the purchase ceiling for the target
// margin it was computed with.
type Calculation struct {
	Result             fees.Result `json:"result"`
	CategoryKeyword    string      `json:"category_keyword,omitempty"`
	TargetMarginRate   float64     `json:"target_margin_rate"`
	RecommendedMaxCost float64     `json:"recommended_max_cost"`
}

// Calculate sanitizes req and computes its breakdown.
func (eng *Engine) Calculate(req CalcRequest) Calculation {
	size := req.Size
	if size == "" {
		size = fees.SizeMedium
	}

	in := fees.Input{
		SalePrice: domain.Sanitize(req.SalePrice),
		Cost:      domain.Sanitize(req.Cost),
		ExtraCost: domain.Sanitize(req.ExtraCost),
		Size:      size,
	}

	var keyword string
	if req.CommissionRate != nil {
		in.CommissionRate = min(domain.Sanitize(*req.CommissionRate), 1)
	} else {
		m := eng.ResolveCategory(req.CategoryPath)
		in.CommissionRate = m.Rate
		keyword = m.Keyword
	}

	target := eng.targetMargin(req.TargetMarginRate)
	c := Calculation{
		Result:             eng.schedule.Calculate(in),
		CategoryKeyword:    keyword,
		TargetMarginRate:   target,
		RecommendedMaxCost: eng.schedule.RecommendedMaxCost(in, target),
	}
	eng.observe(c.Result)
	return c
}

func (eng *Engine) targetMargin(override *float64) float64 {
	if override != nil {
		return domain.Sanitize(*override)
	}
	return eng.prefs.TargetMarginRate
}

func (eng *Engine) observe(r fees.Result) {
	metrics.CalculationsTotal.WithLabelValues(string(r.Size)).Inc()
	metrics.MarginRateDistribution.Observe(r.MarginRate)
}
