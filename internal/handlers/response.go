package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bakeryhq/orderdesk/internal/assistant"
	"github.com/bakeryhq/orderdesk/internal/export"
	"github.com/bakeryhq/orderdesk/internal/service"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// WriteServiceError maps domain errors to status codes. Validation messages
// are shown to the caller; anything unexpected becomes a generic 500.
func WriteServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case service.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error(), logger)
	case service.IsNotFound(err):
		WriteError(w, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, export.ErrNothingToExport):
		WriteError(w, http.StatusNotFound, "No hay pedidos para exportar", logger)
	case errors.Is(err, assistant.ErrUnavailable):
		WriteError(w, http.StatusServiceUnavailable, "Assistant is not configured", logger)
	default:
		logger.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
