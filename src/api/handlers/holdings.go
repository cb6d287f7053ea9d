package handlers

import (
	"bytes"
	"consolidator/src/models"
	"consolidator/src/services"
	"consolidator/src/utils"
	"context"
	"fmt"
	"net/http"
	"time"
)

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	run, err := h.Controller.GetLatestRun(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	holdings := run.Holdings
	if holdings == nil {
		holdings = []models.Holding{}
	}
	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) GetHoldingsSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	summary, err := h.Controller.GetSummary(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, summary, http.StatusOK)
}

func (h *Handler) GetRemovedDuplicates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	run, err := h.Controller.GetLatestRun(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	removed := run.RemovedDuplicates
	if removed == nil {
		removed = []models.RemovedDuplicate{}
	}
	h.respond(w, r, removed, http.StatusOK)
}

// ExportHoldings downloads the latest holdings as JSON, CSV or XLSX
// (format query parameter, XLSX by default).
func (h *Handler) ExportHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	formatStr := r.URL.Query().Get("format")
	if formatStr == "" {
		formatStr = string(services.FormatXLSX)
	}
	format, err := services.ParseExportFormat(formatStr)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	var buf bytes.Buffer
	if err := h.Controller.ExportLatest(ctx, &buf, format); err != nil {
		h.HandleErrors(w, err)
		return
	}

	switch format {
	case services.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=holdings.xlsx")
	case services.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=holdings.csv")
	default:
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=holdings.json")
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
