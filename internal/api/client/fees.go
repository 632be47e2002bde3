package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

// CalculateRequest is the body of POST /api/v1/calculate.
type CalculateRequest struct {
	SalePrice        float64       `json:"sale_price"`
	CommissionRate   *float64      `json:"commission_rate,omitempty"`
	CategoryPath     []string      `json:"category_path,omitempty"`
	Cost             float64       `json:"cost"`
	ExtraCost        float64       `json:"extra_cost,omitempty"`
	Size             fees.SizeTier `json:"size,omitempty"`
	TargetMarginRate *float64      `json:"target_margin_rate,omitempty"`
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Product          domain.Product     `json:"product"`
	SalePrice        *float64           `json:"sale_price,omitempty"`
	Cost             *float64           `json:"cost,omitempty"`
	EstimateCost     bool               `json:"estimate_cost,omitempty"`
	ExtraCost        float64            `json:"extra_cost,omitempty"`
	Size             fees.SizeTier      `json:"size,omitempty"`
	TargetMarginRate *float64           `json:"target_margin_rate,omitempty"`
	DisplayMode      domain.DisplayMode `json:"display_mode,omitempty"`
}

// CategoryResolution is the response of POST /api/v1/categories/resolve.
type CategoryResolution struct {
	engine.CategoryMatch
	SizeLabel string `json:"size_label"`
}

// SizeInfo names a size tier.
type SizeInfo struct {
	Size  fees.SizeTier `json:"size"`
	Label string        `json:"label"`
}

// FeeTable is the response of GET /api/v1/logistics/fees.
type FeeTable struct {
	Sizes    []SizeInfo          `json:"sizes"`
	Brackets []fees.PriceBracket `json:"brackets"`
	Cells    []fees.FeeCell      `json:"cells"`
}

// Calculate computes a fee breakdown on the server.
func (c *Client) Calculate(ctx context.Context, req *CalculateRequest) (*engine.Calculation, error) {
	var out engine.Calculation
	if err := c.postJSON(ctx, "/api/v1/calculate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analyze runs a product analysis on the server.
func (c *Client) Analyze(ctx context.Context, req *AnalyzeRequest) (*engine.Analysis, error) {
	var out engine.Analysis
	if err := c.postJSON(ctx, "/api/v1/analyze", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveCategory looks up the commission rate for a category path.
func (c *Client) ResolveCategory(ctx context.Context, path []string) (*CategoryResolution, error) {
	if path == nil {
		path = []string{}
	}
	body := map[string][]string{"category_path": path}

	var out CategoryResolution
	if err := c.postJSON(ctx, "/api/v1/categories/resolve", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogisticsFees returns the full logistics fee table.
func (c *Client) LogisticsFees(ctx context.Context) (*FeeTable, error) {
	var out FeeTable
	if err := c.getJSON(ctx, "/api/v1/logistics/fees", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LookupFee returns the logistics fee for a sale price and size.
func (c *Client) LookupFee(
	ctx context.Context,
	size fees.SizeTier,
	salePrice float64,
) (*fees.FeeCell, error) {
	params := url.Values{}
	params.Set("sale_price", strconv.FormatFloat(salePrice, 'f', -1, 64))

	var out fees.FeeCell
	path := "/api/v1/logistics/fees/" + url.PathEscape(string(size)) + "?" + params.Encode()
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
