package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// genericFaultMessage is all a client learns about an unexpected fault.
const genericFaultMessage = "internal server error"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a service error onto the API's error contract:
//   - validation failures → 400 with the field message
//   - store failures → 400 with the backend's message
//   - anything else → 500 with a generic message (details stay in the logs)
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	var se *domain.StoreError
	if errors.As(err, &se) {
		writeError(w, http.StatusBadRequest, se.Message())
		return
	}
	writeError(w, http.StatusInternalServerError, genericFaultMessage)
}
