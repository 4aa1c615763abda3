package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"rental-analyzer/domain"
	"rental-analyzer/repository"
	"rental-analyzer/service"
)

// AnalysisHandler serves the scenario and comparison endpoints.
type AnalysisHandler struct {
	scenarios *service.ScenarioService
	repo      repository.AnalysisRepository
	log       zerolog.Logger
}

func NewAnalysisHandler(
	scenarios *service.ScenarioService,
	repo repository.AnalysisRepository,
	log zerolog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{scenarios: scenarios, repo: repo, log: log}
}

// Scenario handles POST /analysis/scenario: the Keep-Rental projection for
// a single configuration.
func (h *AnalysisHandler) Scenario(w http.ResponseWriter, r *http.Request) {
	var cfg domain.AnalysisConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.scenarios.ComputeScenario(cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Info().
		Int("hold_years", cfg.Assumptions.HoldYears).
		Float64("current_value", cfg.Property.CurrentValue).
		Msg("scenario computed")

	writeJSON(w, http.StatusOK, result)
}

// Compare handles POST /analysis/compare: both scenarios plus the
// recommendation.
func (h *AnalysisHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var cfg domain.AnalysisConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.scenarios.CompareSellVsKeep(cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Info().
		Str("recommendation", result.Recommendation).
		Float64("difference", result.Difference).
		Msg("comparison computed")

	writeJSON(w, http.StatusOK, result)
}

// List handles GET /analyses: every stored comparison, newest last.
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.List())
}
