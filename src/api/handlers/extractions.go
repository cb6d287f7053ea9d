package handlers

import (
	"consolidator/src/schemas"
	"consolidator/src/utils"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

func (h *Handler) CreateExtraction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var request schemas.ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	run, err := h.Controller.RunExtraction(ctx, request.Folder)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.ExtractionResponse{
		RunID:             run.ID,
		Folder:            run.Folder,
		Issuers:           run.Issuers,
		HoldingsCount:     len(run.Holdings),
		RemovedDuplicates: len(run.RemovedDuplicates),
		Totals:            run.Totals,
	}, http.StatusCreated)
}
