package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
)

// LogisticsHandler serves the logistics fee table.
type LogisticsHandler struct {
	eng *engine.Engine
}

// NewLogisticsHandler creates a new LogisticsHandler.
func NewLogisticsHandler(eng *engine.Engine) *LogisticsHandler {
	return &LogisticsHandler{eng: eng}
}

// SizeInfo names a size tier.
type SizeInfo struct {
	Size  fees.SizeTier `json:"size"  example:"medium"`
	Label string        `json:"label" example:"중형"`
}

// ListFeesOutput is the full tax-inclusive fee table.
type ListFeesOutput struct {
	Body struct {
		Sizes    []SizeInfo          `json:"sizes"`
		Brackets []fees.PriceBracket `json:"brackets"`
		Cells    []fees.FeeCell      `json:"cells"`
	}
}

// LookupFeeInput selects one cell of the fee table.
type LookupFeeInput struct {
	Size      string  `path:"size"        doc:"Size tier"             example:"medium"`
	SalePrice float64 `query:"sale_price" doc:"Sale price in won"     example:"25800"  minimum:"0"`
}

// LookupFeeOutput is one cell of the fee table.
type LookupFeeOutput struct {
	Body fees.FeeCell
}

// ListFees returns every bracket and size of the fee table.
func (h *LogisticsHandler) ListFees(
	_ context.Context,
	_ *struct{},
) (*ListFeesOutput, error) {
	s := h.eng.Schedule()

	resp := &ListFeesOutput{}
	resp.Body.Sizes = make([]SizeInfo, 0, len(fees.SizeTiers))
	for _, t := range fees.SizeTiers {
		resp.Body.Sizes = append(resp.Body.Sizes, SizeInfo{Size: t, Label: t.Label()})
	}
	resp.Body.Brackets = s.Brackets
	resp.Body.Cells = s.Cells()
	return resp, nil
}

// LookupFee returns the fee that applies to a sale price and size.
func (h *LogisticsHandler) LookupFee(
	_ context.Context,
	input *LookupFeeInput,
) (*LookupFeeOutput, error) {
	size, err := fees.ParseSize(input.Size)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &LookupFeeOutput{Body: h.eng.Schedule().Cell(input.SalePrice, size)}, nil
}

// RegisterLogisticsRoutes registers logistics fee endpoints with the Huma API.
func RegisterLogisticsRoutes(api huma.API, h *LogisticsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-logistics-fees",
		Method:      http.MethodGet,
		Path:        "/api/v1/logistics/fees",
		Summary:     "List logistics fees",
		Description: "Returns the tax-inclusive logistics fee for every price bracket and size tier.",
		Tags:        []string{"logistics"},
	}, h.ListFees)

	huma.Register(api, huma.Operation{
		OperationID: "lookup-logistics-fee",
		Method:      http.MethodGet,
		Path:        "/api/v1/logistics/fees/{size}",
		Summary:     "Look up a logistics fee",
		Description: "Returns the logistics fee and its inbound/shipping split for a sale price and size.",
		Tags:        []string{"logistics"},
		Errors:      []int{http.StatusBadRequest},
	}, h.LookupFee)
}
