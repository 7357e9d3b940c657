package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakeryhq/orderdesk/internal/export"
	"github.com/bakeryhq/orderdesk/internal/production"
	"github.com/bakeryhq/orderdesk/internal/service"
)

// ProductionHandler serves the daily and weekly production plans
type ProductionHandler struct {
	service *service.ProductionService
	log     *slog.Logger
}

func NewProductionHandler(service *service.ProductionService, log *slog.Logger) *ProductionHandler {
	return &ProductionHandler{service: service, log: log}
}

// Daily handles GET /api/production/daily?date=
func (h *ProductionHandler) Daily(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.service.Daily)
}

// Weekly handles GET /api/production/weekly?date=
func (h *ProductionHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.service.Weekly)
}

// ExportDaily handles GET /api/production/daily.{format}
func (h *ProductionHandler) ExportDaily(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.service.DailySheet)
}

// ExportWeekly handles GET /api/production/weekly.{format}
func (h *ProductionHandler) ExportWeekly(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.service.WeeklySheet)
}

func (h *ProductionHandler) summary(w http.ResponseWriter, r *http.Request, build func(context.Context, string) (production.Summary, error)) {
	summary, err := build(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.log)
}

func (h *ProductionHandler) export(w http.ResponseWriter, r *http.Request, build func(context.Context, string) (export.Sheet, error)) {
	sheet, err := build(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	artifact, err := render(sheet, chi.URLParam(r, "format"))
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	h.log.Info("production exported", "filename", artifact.Filename, "rows", len(sheet.Rows))
	writeArtifact(w, artifact, h.log)
}
