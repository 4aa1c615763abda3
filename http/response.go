package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rental-analyzer/domain"
	"rental-analyzer/service"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps engine errors to HTTP status codes. Validation failures
// carry the full field list so a client can surface every problem at once.
func writeError(w http.ResponseWriter, err error) {
	var fieldErrs domain.ValidationErrors
	if errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fieldErrs})
		return
	}
	if errors.Is(err, service.ErrNoBreakEven) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeJSON(w, http.StatusGatewayTimeout, map[string]string{"error": "analysis timed out"})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
