package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bakeryhq/orderdesk/internal/service"
	"github.com/bakeryhq/orderdesk/internal/sheets"
)

// SyncHandler reports and triggers spreadsheet syncs
type SyncHandler struct {
	syncer *sheets.Syncer
	orders *service.OrderService
	log    *slog.Logger
}

func NewSyncHandler(syncer *sheets.Syncer, orders *service.OrderService, log *slog.Logger) *SyncHandler {
	return &SyncHandler{syncer: syncer, orders: orders, log: log}
}

// Status handles GET /api/sync
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.syncer.Status(), h.log)
}

// Trigger handles POST /api/sync. The send happens in the background; poll
// the status for the outcome.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Resync(r.Context()); err != nil {
		WriteServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusAccepted, h.syncer.Status(), h.log)
}
