package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-analyzer/domain"
)

func TestSensitivityEndpoint(t *testing.T) {
	router := newTestServer(t)

	rec := postJSON(t, router, "/analysis/sensitivity", map[string]any{
		"config":   testConfigJSON(),
		"variable": "rent",
		"levels":   []float64{-0.1, 0, 0.1},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Variable string                    `json:"variable"`
		Points   []domain.SensitivityPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rent", body.Variable)
	require.Len(t, body.Points, 3)
	assert.Less(t,
		body.Points[0].Result.KeepRental.TotalReturn,
		body.Points[2].Result.KeepRental.TotalReturn)
}

func TestSensitivityEndpointUnknownVariable(t *testing.T) {
	router := newTestServer(t)

	rec := postJSON(t, router, "/analysis/sensitivity", map[string]any{
		"config":   testConfigJSON(),
		"variable": "cap_rate",
		"levels":   []float64{0.1},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBreakEvenEndpoint(t *testing.T) {
	router := newTestServer(t)

	rec := postJSON(t, router, "/analysis/break-even", map[string]any{
		"config":   testConfigJSON(),
		"variable": "appreciation",
		"low":      -0.05,
		"high":     0.10,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.BreakEvenResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "appreciation", result.Variable)
	assert.InDelta(t, 0.0113, result.Value, 0.002)
}

func TestBreakEvenEndpointNoCrossing(t *testing.T) {
	router := newTestServer(t)

	rec := postJSON(t, router, "/analysis/break-even", map[string]any{
		"config":   testConfigJSON(),
		"variable": "vacancy",
		"low":      0.0,
		"high":     0.10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestVacancyStressEndpoint(t *testing.T) {
	router := newTestServer(t)

	rec := postJSON(t, router, "/analysis/vacancy-stress", map[string]any{
		"config":        testConfigJSON(),
		"start_month":   0,
		"vacant_months": 3,
		"starting_cash": 1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.VacancyStressResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.InDelta(t, 14_400, result.LostRent, 0.01)
	assert.Positive(t, result.MaxShortfall)
}

func TestValueShockEndpoint(t *testing.T) {
	router := newTestServer(t)

	rec := postJSON(t, router, "/analysis/value-shock", map[string]any{
		"config": testConfigJSON(),
		"shocks": []float64{-0.3},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Scenarios []domain.ValueShockScenario `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Scenarios, 1)
	assert.InDelta(t, 350_000, body.Scenarios[0].ShockedValue, 0.01)
	assert.False(t, body.Scenarios[0].Underwater)
}
