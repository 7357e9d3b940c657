package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bakeryhq/orderdesk/internal/assistant"
	"github.com/bakeryhq/orderdesk/internal/models"
	"github.com/bakeryhq/orderdesk/internal/production"
	"github.com/bakeryhq/orderdesk/internal/service"
)

// AssistantHandler exposes the language-model helpers
type AssistantHandler struct {
	assistant  *assistant.Assistant
	products   *service.ProductService
	production *service.ProductionService
	log        *slog.Logger
}

func NewAssistantHandler(a *assistant.Assistant, products *service.ProductService, production *service.ProductionService, log *slog.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: a, products: products, production: production, log: log}
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Items []models.OrderItem `json:"items"`
}

type insightsRequest struct {
	Date   string `json:"date,omitempty"`
	Period string `json:"period,omitempty"` // "daily" (default) or "weekly"
}

type insightsResponse struct {
	Summary production.Summary `json:"summary"`
	Text    string             `json:"text"`
}

// ParseOrder handles POST /api/assistant/parse. A reply the model gets
// wrong yields an empty item list so the order form is left untouched.
func (h *AssistantHandler) ParseOrder(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if !h.assistant.Available() {
		WriteServiceError(w, assistant.ErrUnavailable, h.log)
		return
	}

	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	items, err := h.assistant.ParseOrder(r.Context(), req.Text, products)
	if err != nil {
		var perr *assistant.ParseError
		if errors.As(err, &perr) {
			h.log.Warn("discarding unparseable order suggestion", "error", perr.Err, "raw", perr.Raw)
		} else {
			h.log.Error("order parse failed", "error", err)
		}
		items = []models.OrderItem{}
	}

	WriteJSON(w, http.StatusOK, parseResponse{Items: items}, h.log)
}

// Insights handles POST /api/assistant/insights
func (h *AssistantHandler) Insights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if !h.assistant.Available() {
		WriteServiceError(w, assistant.ErrUnavailable, h.log)
		return
	}

	var (
		summary production.Summary
		err     error
	)
	switch req.Period {
	case "", "daily":
		summary, err = h.production.Daily(r.Context(), req.Date)
	case "weekly":
		summary, err = h.production.Weekly(r.Context(), req.Date)
	default:
		WriteError(w, http.StatusBadRequest, "period must be daily or weekly", h.log)
		return
	}
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	resp := insightsResponse{Summary: summary}
	if summary.Empty() {
		WriteJSON(w, http.StatusOK, resp, h.log)
		return
	}

	text, err := h.assistant.Insights(r.Context(), summary.ByName())
	if err != nil {
		h.log.Error("insights request failed", "error", err)
		WriteError(w, http.StatusBadGateway, "Assistant request failed", h.log)
		return
	}

	resp.Text = text
	WriteJSON(w, http.StatusOK, resp, h.log)
}
