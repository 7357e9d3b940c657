package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bakeryhq/orderdesk/internal/service"
)

// SettingsHandler manages the webhook setting
type SettingsHandler struct {
	service *service.SettingsService
	log     *slog.Logger
}

func NewSettingsHandler(service *service.SettingsService, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, log: log}
}

type webhookSetting struct {
	URL string `json:"url"`
}

// GetWebhook handles GET /api/settings/webhook
func (h *SettingsHandler) GetWebhook(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, webhookSetting{URL: h.service.WebhookURL(r.Context())}, h.log)
}

// PutWebhook handles PUT /api/settings/webhook
func (h *SettingsHandler) PutWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookSetting
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.service.SetWebhookURL(r.Context(), req.URL); err != nil {
		WriteServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, webhookSetting{URL: h.service.WebhookURL(r.Context())}, h.log)
}
