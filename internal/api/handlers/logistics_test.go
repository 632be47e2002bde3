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
)

func TestLogisticsHandler_ListFees(t *testing.T) {
	t.Parallel()

	h := handlers.NewLogisticsHandler(engine.NewEngine(nil))

	_, api := humatest.New(t)
	handlers.RegisterLogisticsRoutes(api, h)

	resp := api.Get("/api/v1/logistics/fees")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Sizes    []handlers.SizeInfo `json:"sizes"`
		Brackets []fees.PriceBracket `json:"brackets"`
		Cells    []fees.FeeCell      `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Sizes, len(fees.SizeTiers))
	assert.Equal(t, fees.DefaultBrackets(), body.Brackets)
	assert.Len(t, body.Cells, len(body.Brackets)*len(body.Sizes))
	for _, c := range body.Cells {
		assert.Equal(t, c.Total, c.Inbound+c.Shipping)
	}
}

func TestLogisticsHandler_LookupFee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTotal  int64
		wantBody   string
	}{
		{
			name:       "medium in 20000-30000 bracket",
			path:       "/api/v1/logistics/fees/medium?sale_price=25800",
			wantStatus: http.StatusOK,
			wantTotal:  4950,
		},
		{
			name:       "bracket lower bound is inclusive",
			path:       "/api/v1/logistics/fees/medium?sale_price=30000",
			wantStatus: http.StatusOK,
			wantTotal:  5170,
		},
		{
			name:       "missing price uses first bracket",
			path:       "/api/v1/logistics/fees/extra-small",
			wantStatus: http.StatusOK,
			wantTotal:  2640,
		},
		{
			name:       "unknown size returns 400",
			path:       "/api/v1/logistics/fees/jumbo?sale_price=1000",
			wantStatus: http.StatusBadRequest,
			wantBody:   `unknown size tier`,
		},
		{
			name:       "negative price returns 422",
			path:       "/api/v1/logistics/fees/small?sale_price=-1",
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `expected number >= 0`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handlers.NewLogisticsHandler(engine.NewEngine(nil))

			_, api := humatest.New(t)
			handlers.RegisterLogisticsRoutes(api, h)

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
			if tt.wantTotal != 0 {
				var cell fees.FeeCell
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cell))
				assert.Equal(t, tt.wantTotal, cell.Total)
				assert.Equal(t, cell.Total, cell.Inbound+cell.Shipping)
			}
		})
	}
}
