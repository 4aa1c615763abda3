package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the analysis endpoints behind the shared middleware stack.
func NewRouter(
	analysis *AnalysisHandler,
	sensitivity *SensitivityHandler,
	limiter *RateLimiter,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(limiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/analysis", func(r chi.Router) {
		r.Post("/scenario", analysis.Scenario)
		r.Post("/compare", analysis.Compare)
		r.Post("/sensitivity", sensitivity.Sensitivity)
		r.Post("/break-even", sensitivity.BreakEven)
		r.Post("/vacancy-stress", sensitivity.VacancyStress)
		r.Post("/value-shock", sensitivity.ValueShock)
	})
	r.Get("/analyses", analysis.List)

	return r
}
