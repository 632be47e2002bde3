package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rocketgrowth-margin/internal/api/handlers"
	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

func knitProduct() map[string]any {
	return map[string]any{
		"title":         "여성 니트 가디건",
		"sale_price":    25800,
		"seller_name":   "행복상사",
		"category_path": []string{"쿠팡 홈", "여성패션", "의류", "니트"},
	}
}

func TestAnalyzeHandler_Analyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantBody   string
		check      func(t *testing.T, a engine.Analysis)
	}{
		{
			name: "explicit cost and size",
			body: map[string]any{
				"product": knitProduct(),
				"cost":    15000,
				"size":    "medium",
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, a engine.Analysis) {
				t.Helper()
				assert.Equal(t, "여성 니트 가디건", a.Title)
				assert.Equal(t, "의류", a.Category.Keyword)
				assert.False(t, a.SizeRecommended)
				assert.InDelta(t, 2870.1, a.Result.NetProfit, 1e-6)
				assert.Equal(t, fees.GradeCaution, a.Assessment.Grade)
				assert.Equal(t, domain.DisplaySimple, a.Preferences.DisplayMode)
				assert.Empty(t, a.Warnings)
			},
		},
		{
			name: "recommended size and estimated cost",
			body: map[string]any{
				"product":       knitProduct(),
				"estimate_cost": true,
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, a engine.Analysis) {
				t.Helper()
				assert.True(t, a.SizeRecommended)
				assert.Equal(t, fees.SizeMedium, a.Size)
				assert.True(t, a.CostEstimated)
				assert.Equal(t, 15480.0, a.Result.Cost)
			},
		},
		{
			name: "preference overrides",
			body: map[string]any{
				"product":            knitProduct(),
				"cost":               15000,
				"target_margin_rate": 10,
				"display_mode":       "detailed",
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, a engine.Analysis) {
				t.Helper()
				assert.Equal(t, 10.0, a.Preferences.TargetMarginRate)
				assert.Equal(t, domain.DisplayDetailed, a.Preferences.DisplayMode)
				assert.True(t, a.Assessment.TargetMet)
			},
		},
		{
			name:       "empty product warns",
			body:       map[string]any{"product": map[string]any{}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, a engine.Analysis) {
				t.Helper()
				assert.Equal(t, []string{engine.WarnProductEmpty}, a.Warnings)
				assert.Zero(t, a.Result.TotalFee)
			},
		},
		{
			name: "direct purchase flagged",
			body: map[string]any{
				"product": map[string]any{
					"title":       "생수 2L",
					"sale_price":  12000,
					"seller_name": "쿠팡",
				},
				"cost": 6000,
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, a engine.Analysis) {
				t.Helper()
				assert.True(t, a.DirectPurchase)
				assert.Equal(t, []string{engine.WarnDirectPurchase}, a.Warnings)
			},
		},
		{
			name: "unknown size returns 400",
			body: map[string]any{
				"product": knitProduct(),
				"size":    "jumbo",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `unknown size tier`,
		},
		{
			name: "invalid display mode returns 422",
			body: map[string]any{
				"product":      knitProduct(),
				"display_mode": "fancy",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `expected value to be one of`,
		},
		{
			name:       "missing product returns 422",
			body:       map[string]any{"cost": 1000},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `expected required property product to be present`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handlers.NewAnalyzeHandler(engine.NewEngine(nil))

			_, api := humatest.New(t)
			handlers.RegisterAnalyzeRoutes(api, h)

			resp := api.Post("/api/v1/analyze", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
			if tt.check != nil {
				var a engine.Analysis
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &a))
				tt.check(t, a)
			}
		})
	}
}
