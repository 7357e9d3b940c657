package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakeryhq/orderdesk/internal/models"
	"github.com/bakeryhq/orderdesk/internal/service"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	service *service.ClientService
	logger  *slog.Logger
}

func NewClientHandler(service *service.ClientService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{service: service, logger: logger}
}

// ListClients handles GET /api/clients
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, clients, h.logger)
}

// GetClient handles GET /api/clients/{clientId}
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.GetClient(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, client, h.logger)
}

// CreateClient handles POST /api/clients
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := decodeJSON(w, r, &c); err != nil {
		h.logger.Warn("failed to decode client", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	created, err := h.service.CreateClient(r.Context(), c)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("client created", "clientId", created.ID)
	WriteJSON(w, http.StatusCreated, created, h.logger)
}

// UpdateClient handles PUT /api/clients/{clientId}
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := decodeJSON(w, r, &c); err != nil {
		h.logger.Warn("failed to decode client", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	c.ID = chi.URLParam(r, "clientId")

	updated, err := h.service.UpdateClient(r.Context(), c)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, updated, h.logger)
}

// DeleteClient handles DELETE /api/clients/{clientId}
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	if err := h.service.DeleteClient(r.Context(), clientID); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("client deleted", "clientId", clientID)
	w.WriteHeader(http.StatusNoContent)
}
