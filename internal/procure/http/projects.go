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

type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate handles project creation.
//
//	@Summary		Create a project
//	@Description	Creates a new Active bidding project owned by the caller. Requires projects:write scope.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Param			request	body		procsdk.CreateProjectRequest	true	"Project"
//	@Success		201		{object}	procsdk.ProjectInfo
//	@Failure		400		{object}	procsdk.ErrorResponse	"Missing title or closing time not in the future"
//	@Security		BearerAuth
//	@Router			/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req procsdk.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	p, err := h.ProjectService.CreateProject(ctx, httpx.UserIDFromCtx(ctx), service.CreateProjectInput{
		Title:                  req.Title,
		Description:            req.Description,
		ClosingTime:            req.ClosingTime,
		Currency:               req.Currency,
		Attachments:            req.Attachments,
		RequiresAuditorOpening: req.RequiresAuditorOpening,
	})
	switch {
	case errors.Is(err, service.ErrProjectInvalid):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Project title is required",
		})
		return
	case errors.Is(err, service.ErrClosingTimeInPast):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_closing_time",
			ErrorDescription: "Closing time must be in the future",
		})
		return
	case err != nil:
		writeProjectError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toProjectInfo(p))
}

// HandleList handles the project listing. Listing sweeps expired
// projects to Ended first, so the response never shows an Active project
// past its closing time.
//
//	@Summary	List projects
//	@Tags		Projects
//	@Produce	json
//	@Success	200	{object}	procsdk.ListProjectsResponse
//	@Security	BearerAuth
//	@Router		/v1/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	projects, err := h.ProjectService.ListProjects(ctx)
	if err != nil {
		log.Error("failed to list projects", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to retrieve projects",
		})
		return
	}

	resp := procsdk.ListProjectsResponse{Projects: make([]procsdk.ProjectInfo, len(projects))}
	for i, p := range projects {
		resp.Projects[i] = toProjectInfo(p)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles fetching a single project.
//
//	@Summary	Get a project
//	@Tags		Projects
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	procsdk.ProjectInfo
//	@Failure	404	{object}	procsdk.ErrorResponse	"Unknown project"
//	@Security	BearerAuth
//	@Router		/v1/projects/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.ProjectService.GetProject(ctx, r.PathValue("id"))
	if err != nil {
		writeProjectError(w, ctx, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectInfo(p))
}

// HandleInvite adds a supplier to the project's invitation set.
// Re-inviting is a no-op. Only the project creator or an Admin may
// invite.
//
//	@Summary	Invite a supplier
//	@Tags		Projects
//	@Accept		json
//	@Param		id		path	string					true	"Project ID"
//	@Param		request	body	procsdk.InviteRequest	true	"Supplier to invite"
//	@Success	204		"Invited (or already invited)"
//	@Failure	403		{object}	procsdk.ErrorResponse	"Not the project creator"
//	@Failure	404		{object}	procsdk.ErrorResponse	"Unknown project or supplier"
//	@Failure	409		{object}	procsdk.ErrorResponse	"Project not active"
//	@Failure	422		{object}	procsdk.ErrorResponse	"Invitee is not a supplier"
//	@Security	BearerAuth
//	@Router		/v1/projects/{id}/invitations [post].
func (h *ProjectsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req procsdk.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	err := h.ProjectService.InviteSupplier(ctx, r.PathValue("id"), req.SupplierID, viewerFromCtx(ctx))
	switch {
	case errors.Is(err, service.ErrInviteForbidden):
		writeForbidden(w)
		return
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, procsdk.ErrorResponse{
			Error:            "user_not_found",
			ErrorDescription: "Unknown supplier",
		})
		return
	case errors.Is(err, service.ErrNotSupplier):
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, procsdk.ErrorResponse{
			Error:            "not_a_supplier",
			ErrorDescription: "Invited user does not hold the Supplier role",
		})
		return
	case err != nil:
		writeProjectError(w, ctx, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListInvitations returns the project's invitations in invitation
// order.
//
//	@Summary	List a project's invitations
//	@Tags		Projects
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	procsdk.ListInvitationsResponse
//	@Failure	404	{object}	procsdk.ErrorResponse	"Unknown project"
//	@Security	BearerAuth
//	@Router		/v1/projects/{id}/invitations [get].
func (h *ProjectsHandler) HandleListInvitations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invitations, err := h.ProjectService.ListInvitations(ctx, r.PathValue("id"))
	if err != nil {
		writeProjectError(w, ctx, err)
		return
	}

	resp := procsdk.ListInvitationsResponse{
		Invitations: make([]procsdk.InvitationInfo, len(invitations)),
	}
	for i, inv := range invitations {
		resp.Invitations[i] = procsdk.InvitationInfo{
			SupplierID: inv.SupplierID,
			InvitedAt:  inv.CreatedAt,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCancel abandons an Active project with zero bids.
//
//	@Summary		Cancel a project
//	@Description	Cancels an Active project, permitted only while no bids exist. Requires projects:cancel scope.
//	@Tags			Projects
//	@Param			id	path	string	true	"Project ID"
//	@Success		204	"Cancelled"
//	@Failure		404	{object}	procsdk.ErrorResponse	"Unknown project"
//	@Failure		409	{object}	procsdk.ErrorResponse	"Not active or has bids"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/cancel [post].
func (h *ProjectsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.ProjectService.CancelProject(ctx, r.PathValue("id"))
	if errors.Is(err, service.ErrProjectHasBids) {
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "project_has_bids",
			ErrorDescription: "Projects with bids cannot be cancelled",
		})
		return
	}
	if err != nil {
		writeProjectError(w, ctx, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
