package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bakeryhq/orderdesk/internal/sheets"
)

// Version is reported by the health endpoint
var Version = "dev"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger    *slog.Logger
	syncer    *sheets.Syncer
	assistant bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, syncer *sheets.Syncer, assistantEnabled bool) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		syncer:    syncer,
		assistant: assistantEnabled,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Sync      sheets.State `json:"sync"`
	Assistant bool         `json:"assistant"`
}

// ServeHTTP handles health check requests. Sync failures do not make the
// service unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Assistant: h.assistant,
	}
	if h.syncer != nil {
		response.Sync = h.syncer.Status().State
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
