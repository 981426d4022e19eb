package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/procsdk"
	"github.com/upvn/procure/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the one-time bootstrap endpoint.
//
//	@Summary		Bootstrap the system
//	@Description	Creates the first Admin account on an empty database. Guarded by the pre-shared bootstrap token and refused once any user exists.
//	@Tags			System
//	@Accept			json
//	@Produce		json
//	@Param			request	body		procsdk.BootstrapRequest	true	"Bootstrap parameters"
//	@Success		201		{object}	procsdk.BootstrapResponse	"Created admin"
//	@Failure		401		{object}	procsdk.ErrorResponse		"Bad bootstrap token"
//	@Failure		409		{object}	procsdk.ErrorResponse		"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req procsdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	adminID, err := h.BootstrapService.Bootstrap(ctx, req.Token, req.Username, req.Name, req.Password)
	switch {
	case errors.Is(err, service.ErrBootstrapAlready):
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "already_bootstrapped",
			ErrorDescription: "System already has users",
		})
		return
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		httpx.WriteJSON(w, http.StatusUnauthorized, procsdk.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Invalid bootstrap token",
		})
		return
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "weak_password",
			ErrorDescription: "Password must be at least 8 characters",
		})
		return
	case err != nil:
		log.Error("bootstrap failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to bootstrap",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, procsdk.BootstrapResponse{AdminID: adminID})
}
