package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/VishardMehta/Smart-Expense-Management/internal/auth"
	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
	"github.com/VishardMehta/Smart-Expense-Management/internal/store"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto API status codes: validation
// failures carry a per-field map, missing rows map to 404, auth
// failures to 401, everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs core.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: map[string]string(fieldErrs),
		})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "transaction not found"})
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, auth.ErrInvalidCredential):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	case errors.Is(err, auth.ErrLoginInProgress), errors.Is(err, auth.ErrAlreadyAuthenticated):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
