package http

import (
	"errors"
	"net/http"

	"github.com/upvn/procure/internal/procure/report"
	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/procsdk"
	"github.com/upvn/procure/pkg/slogx"
)

type OpeningHandler struct {
	OpeningService *service.OpeningService
}

// HandleOpen performs the bid opening ceremony. Repeating the call on an
// already-Opened project re-downloads the same record; the transition
// itself happens at most once.
//
//	@Summary		Open a project's bids
//	@Description	Transitions an Ended project to Opened and returns the opening record. Requires projects:open scope; per-project permission (auditor path or creator) is enforced on top.
//	@Tags			Opening
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	procsdk.OpeningRecordResponse
//	@Failure		403	{object}	procsdk.ErrorResponse	"Caller may not open this project"
//	@Failure		404	{object}	procsdk.ErrorResponse	"Unknown project"
//	@Failure		409	{object}	procsdk.ErrorResponse	"Project has not ended"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/open [post].
func (h *OpeningHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.OpeningService.Open(ctx, r.PathValue("id"), viewerFromCtx(ctx))
	switch {
	case errors.Is(err, service.ErrOpeningForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, procsdk.ErrorResponse{
			Error:            "opening_forbidden",
			ErrorDescription: "You may not open this project's bids",
		})
		return
	case errors.Is(err, service.ErrProjectNotEnded):
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "project_not_ended",
			ErrorDescription: "Bids can only be opened after the project has ended",
		})
		return
	case err != nil:
		writeProjectError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOpeningRecordResponse(rec))
}

// HandleRecord re-downloads the opening record of an Opened project.
// With ?format=text the record is rendered as a plain-text audit
// document instead of JSON; both forms are deterministic.
//
//	@Summary	Download an opening record
//	@Tags		Opening
//	@Produce	json
//	@Param		id		path		string	true	"Project ID"
//	@Param		format	query		string	false	"Set to 'text' for the plain-text document"
//	@Success	200		{object}	procsdk.OpeningRecordResponse
//	@Failure	404		{object}	procsdk.ErrorResponse	"Unknown project"
//	@Failure	409		{object}	procsdk.ErrorResponse	"Project not opened"
//	@Security	BearerAuth
//	@Router		/v1/projects/{id}/record [get].
func (h *OpeningHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.OpeningService.BuildOpeningRecord(ctx, r.PathValue("id"))
	if errors.Is(err, service.ErrProjectNotOpened) {
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "project_not_opened",
			ErrorDescription: "The project's bids have not been opened",
		})
		return
	}
	if err != nil {
		writeProjectError(w, ctx, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		doc, err := report.RenderOpeningRecord(rec)
		if err != nil {
			slogx.FromContext(ctx).Error("failed to render opening record", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to render record",
			})
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOpeningRecordResponse(rec))
}
