package engine

import (
	"github.com/donaldgifford/rocketgrowth-margin/internal/metrics"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

// Warning messages attached to an Analysis.
const (
	WarnProductEmpty   = "상품 정보를 찾을 수 없습니다. 페이지를 새로고침해보세요."
	WarnDirectPurchase = "쿠팡 직매입 상품입니다. 경쟁이 어려우니 다른 상품을 찾아보세요."
	WarnNoPrice        = "판매가를 알 수 없어 계산 결과가 0으로 표시됩니다."
)

// AnalysisRequest describes a scraped product and the seller's inputs.
// Nil Cost with EstimateCost set derives a cost from the sale price. An
// empty Size is recommended from the category path. SalePrice overrides
// the product's own price when set.
type AnalysisRequest struct {
	Product      domain.Product
	SalePrice    *float64
	Cost         *float64
	EstimateCost bool
	ExtraCost    float64
	Size         fees.SizeTier
	Preferences  *domain.Preferences
}

// Analysis is the full profitability picture for one product.
type Analysis struct {
	Title              string             `json:"title,omitempty"`
	SalePrice          float64            `json:"sale_price"`
	Category           CategoryMatch      `json:"category"`
	Size               fees.SizeTier      `json:"size"`
	SizeLabel          string             `json:"size_label"`
	SizeRecommended    bool               `json:"size_recommended"`
	CostEstimated      bool               `json:"cost_estimated"`
	Result             fees.Result        `json:"result"`
	RecommendedMaxCost float64            `json:"recommended_max_cost"`
	Assessment         fees.Assessment    `json:"assessment"`
	Preferences        domain.Preferences `json:"preferences"`
	DirectPurchase     bool               `json:"direct_purchase"`
	Warnings           []string           `json:"warnings,omitempty"`
}

// Analyze resolves the category, picks size and cost defaults, computes the
// breakdown and grades it against the target margin.
func (eng *Engine) Analyze(req AnalysisRequest) Analysis {
	p := req.Product
	prefs := eng.prefs
	if req.Preferences != nil {
		prefs = *req.Preferences
		prefs.TargetMarginRate = domain.Sanitize(prefs.TargetMarginRate)
		if !prefs.DisplayMode.Valid() {
			prefs.DisplayMode = eng.prefs.DisplayMode
		}
	}

	price := p.Price()
	if req.SalePrice != nil {
		price = domain.Sanitize(*req.SalePrice)
	}

	a := Analysis{
		SalePrice:      price,
		Category:       eng.ResolveCategory(p.CategoryPath),
		Size:           req.Size,
		Preferences:    prefs,
		DirectPurchase: p.IsDirectPurchase(),
	}
	if p.Title != nil {
		a.Title = *p.Title
	}

	if a.Size == "" {
		a.Size = a.Category.RecommendedSize
		a.SizeRecommended = true
	}
	a.SizeLabel = a.Size.Label()

	var cost float64
	switch {
	case req.Cost != nil:
		cost = domain.Sanitize(*req.Cost)
	case req.EstimateCost:
		cost = fees.EstimateCost(price)
		a.CostEstimated = true
	}

	in := fees.Input{
		SalePrice:      price,
		CommissionRate: a.Category.Rate,
		Cost:           cost,
		ExtraCost:      domain.Sanitize(req.ExtraCost),
		Size:           a.Size,
	}
	a.Result = eng.schedule.Calculate(in)
	a.RecommendedMaxCost = eng.schedule.RecommendedMaxCost(in, prefs.TargetMarginRate)
	a.Assessment = fees.Assess(a.Result.MarginRate, a.Result.NetProfit, prefs.TargetMarginRate)

	if p.Empty() && req.SalePrice == nil {
		a.Warnings = append(a.Warnings, WarnProductEmpty)
	} else if price == 0 {
		a.Warnings = append(a.Warnings, WarnNoPrice)
	}
	if a.DirectPurchase {
		a.Warnings = append(a.Warnings, WarnDirectPurchase)
	}

	eng.observe(a.Result)
	metrics.AssessmentsTotal.WithLabelValues(string(a.Assessment.Grade)).Inc()
	eng.log.Debug("analyzed product",
		"title", a.Title,
		"keyword", a.Category.Keyword,
		"size", a.Size,
		"margin_rate", a.Result.MarginRate,
		"grade", a.Assessment.Grade,
	)

	return a
}
