package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
)

// CalculateHandler serves direct fee calculations.
type CalculateHandler struct {
	eng *engine.Engine
}

// NewCalculateHandler creates a new CalculateHandler.
func NewCalculateHandler(eng *engine.Engine) *CalculateHandler {
	return &CalculateHandler{eng: eng}
}

// CalculateInput is the request body for the calculate endpoint.
type CalculateInput struct {
	Body struct {
		SalePrice        float64  `json:"sale_price"                   doc:"Sale price in won"                         minimum:"0" example:"25800"`
		CommissionRate   *float64 `json:"commission_rate,omitempty"    doc:"Commission rate; resolved from the category when absent" minimum:"0" maximum:"1" example:"0.105"`
		CategoryPath     []string `json:"category_path,omitempty"      doc:"Category breadcrumb, outermost first"`
		Cost             float64  `json:"cost"                         doc:"Purchase cost in won"                      minimum:"0" example:"15000"`
		ExtraCost        float64  `json:"extra_cost,omitempty"         doc:"Packaging and other per-unit costs in won" minimum:"0"`
		Size             string   `json:"size,omitempty"               doc:"Size tier; medium when empty"              example:"medium"`
		TargetMarginRate *float64 `json:"target_margin_rate,omitempty" doc:"Target margin in percent"                  minimum:"0" exclusiveMaximum:"100"`
	}
}

// CalculateOutput is the response body for the calculate endpoint.
type CalculateOutput struct {
	Body engine.Calculation
}

// Calculate computes the fee breakdown for a sale price, cost and size.
func (h *CalculateHandler) Calculate(
	ctx context.Context,
	input *CalculateInput,
) (*CalculateOutput, error) {
	_, span := tracer.Start(ctx, "calculate")
	defer span.End()

	size, err := parseOptionalSize(input.Body.Size)
	if err != nil {
		span.RecordError(err)
		return nil, huma.Error400BadRequest(err.Error())
	}

	c := h.eng.Calculate(engine.CalcRequest{
		SalePrice:        input.Body.SalePrice,
		CommissionRate:   input.Body.CommissionRate,
		CategoryPath:     input.Body.CategoryPath,
		Cost:             input.Body.Cost,
		ExtraCost:        input.Body.ExtraCost,
		Size:             size,
		TargetMarginRate: input.Body.TargetMarginRate,
	})
	span.SetAttributes(
		attribute.String("rgm.size", string(c.Result.Size)),
		attribute.Float64("rgm.margin_rate", c.Result.MarginRate),
	)
	return &CalculateOutput{Body: c}, nil
}

// parseOptionalSize accepts an empty size and leaves the default to the
// engine.
func parseOptionalSize(s string) (fees.SizeTier, error) {
	if s == "" {
		return "", nil
	}
	return fees.ParseSize(s)
}

// RegisterCalculateRoutes registers calculate endpoints with the Huma API.
func RegisterCalculateRoutes(api huma.API, h *CalculateHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "calculate-fees",
		Method:      http.MethodPost,
		Path:        "/api/v1/calculate",
		Summary:     "Calculate fees and margin",
		Description: "Computes sales commission, VAT, logistics fees, net profit, margin " +
			"and the purchase price ceiling for the given inputs.",
		Tags:   []string{"calculate"},
		Errors: []int{http.StatusBadRequest},
	}, h.Calculate)
}
