package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakeryhq/orderdesk/internal/models"
	"github.com/bakeryhq/orderdesk/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	production   *service.ProductionService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, production *service.ProductionService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		production:   production,
		log:          log,
	}
}

// ListOrders handles GET /api/orders. ?date= narrows to one day and
// ?from=&to= to an inclusive range.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if date := q.Get("date"); date != "" {
		from, to = date, date
	}

	var (
		orders []models.Order
		err    error
	)
	switch {
	case from == "" && to == "":
		orders, err = h.orderService.ListOrders(r.Context())
	case from == "" || to == "":
		WriteError(w, http.StatusBadRequest, "Both from and to are required", h.log)
		return
	default:
		orders, err = h.orderService.ListOrdersBetween(r.Context(), from, to)
	}
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, models.Views(orders), h.log)
}

// GetOrder handles GET /api/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order.View(), h.log)
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		if service.IsValidation(err) {
			h.log.Info("order rejected", "error", err)
		}
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, order.View(), h.log)
}

// UpdateOrder handles PUT /api/orders/{orderId}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.UpdateOrder(r.Context(), chi.URLParam(r, "orderId"), req)
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order.View(), h.log)
}

// DeleteOrder handles DELETE /api/orders/{orderId}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.DeleteOrder(r.Context(), chi.URLParam(r, "orderId")); err != nil {
		WriteServiceError(w, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportOrder handles GET /api/orders/{orderId}/export.{format}
func (h *OrderHandler) ExportOrder(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.production.OrderSheet(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	artifact, err := render(sheet, chi.URLParam(r, "format"))
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}
	writeArtifact(w, artifact, h.log)
}
