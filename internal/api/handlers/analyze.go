package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

// AnalyzeHandler serves product profitability analyses.
type AnalyzeHandler struct {
	eng *engine.Engine
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(eng *engine.Engine) *AnalyzeHandler {
	return &AnalyzeHandler{eng: eng}
}

// AnalyzeInput is the request body for the analyze endpoint.
type AnalyzeInput struct {
	Body struct {
		Product          domain.Product `json:"product"                      doc:"Scraped or hand-entered product data"`
		SalePrice        *float64       `json:"sale_price,omitempty"         doc:"Overrides the product's sale price"   minimum:"0"`
		Cost             *float64       `json:"cost,omitempty"               doc:"Purchase cost in won"                 minimum:"0"`
		EstimateCost     bool           `json:"estimate_cost,omitempty"      doc:"Estimate cost from the sale price when cost is absent"`
		ExtraCost        float64        `json:"extra_cost,omitempty"         doc:"Packaging and other per-unit costs"   minimum:"0"`
		Size             string         `json:"size,omitempty"               doc:"Size tier; recommended from the category when empty"`
		TargetMarginRate *float64       `json:"target_margin_rate,omitempty" doc:"Target margin in percent"             minimum:"0" exclusiveMaximum:"100"`
		DisplayMode      string         `json:"display_mode,omitempty"       doc:"Result detail level"                  enum:"simple,detailed"`
	}
}

// AnalyzeOutput is the response body for the analyze endpoint.
type AnalyzeOutput struct {
	Body engine.Analysis
}

// Analyze resolves a product's category and size, computes its breakdown
// and grades the margin.
func (h *AnalyzeHandler) Analyze(
	ctx context.Context,
	input *AnalyzeInput,
) (*AnalyzeOutput, error) {
	_, span := tracer.Start(ctx, "analyze")
	defer span.End()

	size, err := parseOptionalSize(input.Body.Size)
	if err != nil {
		span.RecordError(err)
		return nil, huma.Error400BadRequest(err.Error())
	}

	req := engine.AnalysisRequest{
		Product:      input.Body.Product,
		SalePrice:    input.Body.SalePrice,
		Cost:         input.Body.Cost,
		EstimateCost: input.Body.EstimateCost,
		ExtraCost:    input.Body.ExtraCost,
		Size:         size,
	}

	if input.Body.TargetMarginRate != nil || input.Body.DisplayMode != "" {
		prefs := h.eng.Preferences()
		if input.Body.TargetMarginRate != nil {
			prefs.TargetMarginRate = *input.Body.TargetMarginRate
		}
		if input.Body.DisplayMode != "" {
			prefs.DisplayMode = domain.DisplayMode(input.Body.DisplayMode)
		}
		req.Preferences = &prefs
	}

	a := h.eng.Analyze(req)
	span.SetAttributes(
		attribute.String("rgm.category", a.Category.Keyword),
		attribute.String("rgm.size", string(a.Size)),
		attribute.String("rgm.grade", string(a.Assessment.Grade)),
		attribute.Int("rgm.warnings", len(a.Warnings)),
	)
	return &AnalyzeOutput{Body: a}, nil
}

// RegisterAnalyzeRoutes registers analyze endpoints with the Huma API.
func RegisterAnalyzeRoutes(api huma.API, h *AnalyzeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-product",
		Method:      http.MethodPost,
		Path:        "/api/v1/analyze",
		Summary:     "Analyze a product",
		Description: "Resolves the commission category and size tier of a product, " +
			"computes the fee breakdown and grades the resulting margin.",
		Tags:   []string{"analyze"},
		Errors: []int{http.StatusBadRequest},
	}, h.Analyze)
}
