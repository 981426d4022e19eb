package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/procsdk"
)

type BidsHandler struct {
	BidService *service.BidService
}

// HandleSubmit appends a bid to the project's ledger. A supplier may bid
// repeatedly; the latest submission is their current bid.
//
//	@Summary		Submit a bid
//	@Description	Appends a bid for the authenticated supplier. Requires an invitation and an Active project.
//	@Tags			Bids
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project ID"
//	@Param			request	body		procsdk.SubmitBidRequest	true	"Bid"
//	@Success		201		{object}	procsdk.BidInfo
//	@Failure		400		{object}	procsdk.ErrorResponse	"Invalid amount"
//	@Failure		403		{object}	procsdk.ErrorResponse	"Not invited"
//	@Failure		409		{object}	procsdk.ErrorResponse	"Bidding closed"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/bids [post].
func (h *BidsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req procsdk.SubmitBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_amount",
			ErrorDescription: "Amount must be a non-negative decimal with at most two fractional digits",
		})
		return
	}

	b, err := h.BidService.SubmitBid(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx), amount, req.Attachments)
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_amount",
			ErrorDescription: "Bid amount must be positive",
		})
		return
	case errors.Is(err, service.ErrNotInvited):
		httpx.WriteJSON(w, http.StatusForbidden, procsdk.ErrorResponse{
			Error:            "not_invited",
			ErrorDescription: "You are not invited to bid on this project",
		})
		return
	case errors.Is(err, service.ErrBiddingClosed):
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "bidding_closed",
			ErrorDescription: "The project is no longer accepting bids",
		})
		return
	case err != nil:
		writeProjectError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toBidInfo(b))
}

// HandleList returns bids subject to sealed visibility: suppliers see
// only their own ledger, and staff see nothing until the project closes.
//
//	@Summary	List a project's bids
//	@Tags		Bids
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	procsdk.ListBidsResponse
//	@Failure	404	{object}	procsdk.ErrorResponse	"Unknown project"
//	@Failure	409	{object}	procsdk.ErrorResponse	"Bids sealed while active"
//	@Security	BearerAuth
//	@Router		/v1/projects/{id}/bids [get].
func (h *BidsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bids, err := h.BidService.ListBids(ctx, r.PathValue("id"), viewerFromCtx(ctx))
	if errors.Is(err, service.ErrBidsSealed) {
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "bids_sealed",
			ErrorDescription: "Bids stay sealed until the project closes",
		})
		return
	}
	if err != nil {
		writeProjectError(w, ctx, err)
		return
	}

	resp := procsdk.ListBidsResponse{Bids: make([]procsdk.BidInfo, len(bids))}
	for i, b := range bids {
		resp.Bids[i] = toBidInfo(b)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
