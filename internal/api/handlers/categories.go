package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
)

// CategoryHandler serves commission rate lookups.
type CategoryHandler struct {
	eng *engine.Engine
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(eng *engine.Engine) *CategoryHandler {
	return &CategoryHandler{eng: eng}
}

// ResolveCategoryInput is the request body for category resolution.
type ResolveCategoryInput struct {
	Body struct {
		CategoryPath []string `json:"category_path" doc:"Category breadcrumb, outermost first"`
	}
}

// ResolveCategoryOutput is the resolved keyword, rate and size.
type ResolveCategoryOutput struct {
	Body struct {
		engine.CategoryMatch
		SizeLabel string `json:"size_label" example:"중형"`
	}
}

// Resolve matches a category path against the keyword table.
func (h *CategoryHandler) Resolve(
	_ context.Context,
	input *ResolveCategoryInput,
) (*ResolveCategoryOutput, error) {
	m := h.eng.ResolveCategory(input.Body.CategoryPath)

	resp := &ResolveCategoryOutput{}
	resp.Body.CategoryMatch = m
	resp.Body.SizeLabel = m.RecommendedSize.Label()
	return resp, nil
}

// RegisterCategoryRoutes registers category endpoints with the Huma API.
func RegisterCategoryRoutes(api huma.API, h *CategoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "resolve-category",
		Method:      http.MethodPost,
		Path:        "/api/v1/categories/resolve",
		Summary:     "Resolve a category commission rate",
		Description: "Scans the breadcrumb from the most specific element outward and " +
			"returns the first keyword match, its commission rate and the typical size tier.",
		Tags: []string{"categories"},
	}, h.Resolve)
}
