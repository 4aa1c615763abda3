package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"rental-analyzer/domain"
	"rental-analyzer/service"
)

// SensitivityHandler serves the sensitivity, break-even and stress
// endpoints. Sweeps run under a per-request deadline.
type SensitivityHandler struct {
	sensitivity *service.SensitivityService
	timeout     time.Duration
	log         zerolog.Logger
}

func NewSensitivityHandler(
	sensitivity *service.SensitivityService,
	timeout time.Duration,
	log zerolog.Logger,
) *SensitivityHandler {
	return &SensitivityHandler{sensitivity: sensitivity, timeout: timeout, log: log}
}

type sensitivityRequest struct {
	Config   domain.AnalysisConfig `json:"config"`
	Variable string                `json:"variable"`
	Levels   []float64             `json:"levels"`
}

type breakEvenRequest struct {
	Config   domain.AnalysisConfig `json:"config"`
	Variable string                `json:"variable"`
	Low      float64               `json:"low"`
	High     float64               `json:"high"`
}

type vacancyStressRequest struct {
	Config       domain.AnalysisConfig `json:"config"`
	StartMonth   int                   `json:"start_month"`
	VacantMonths int                   `json:"vacant_months"`
	StartingCash float64               `json:"starting_cash"`
}

type valueShockRequest struct {
	Config domain.AnalysisConfig `json:"config"`
	Shocks []float64             `json:"shocks"`
}

// Sensitivity handles POST /analysis/sensitivity.
func (h *SensitivityHandler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	points, err := h.sensitivity.RunSensitivity(ctx, req.Config, req.Variable, req.Levels)
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Info().
		Str("variable", req.Variable).
		Int("levels", len(points)).
		Msg("sensitivity sweep computed")

	writeJSON(w, http.StatusOK, map[string]any{
		"variable": req.Variable,
		"points":   points,
	})
}

// BreakEven handles POST /analysis/break-even.
func (h *SensitivityHandler) BreakEven(w http.ResponseWriter, r *http.Request) {
	var req breakEvenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.sensitivity.BreakEven(ctx, req.Config, req.Variable, req.Low, req.High)
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Info().
		Str("variable", req.Variable).
		Float64("value", result.Value).
		Int("iterations", result.Iterations).
		Msg("break-even solved")

	writeJSON(w, http.StatusOK, result)
}

// VacancyStress handles POST /analysis/vacancy-stress.
func (h *SensitivityHandler) VacancyStress(w http.ResponseWriter, r *http.Request) {
	var req vacancyStressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.sensitivity.VacancyStress(req.Config, req.StartMonth, req.VacantMonths, req.StartingCash)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ValueShock handles POST /analysis/value-shock.
func (h *SensitivityHandler) ValueShock(w http.ResponseWriter, r *http.Request) {
	var req valueShockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	scenarios, err := h.sensitivity.ValueShock(req.Config, req.Shocks)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"scenarios": scenarios})
}
