package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/procsdk"
	"github.com/upvn/procure/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles the list users endpoint.
//
//	@Summary		List users
//	@Description	Returns every account oldest-first. Requires admin:read scope.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	procsdk.ListUsersResponse
//	@Failure		401	{object}	procsdk.ErrorResponse	"Unauthorized"
//	@Failure		403	{object}	procsdk.ErrorResponse	"Missing required scope"
//	@Security		BearerAuth
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to retrieve users",
		})
		return
	}

	resp := procsdk.ListUsersResponse{Users: make([]procsdk.UserInfo, len(users))}
	for i, u := range users {
		resp.Users[i] = toUserInfo(u)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles the get user endpoint. Callers may fetch their own
// account; fetching others requires the Admin role.
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	procsdk.UserInfo
//	@Failure	403	{object}	procsdk.ErrorResponse	"Not your account"
//	@Failure	404	{object}	procsdk.ErrorResponse	"Unknown user"
//	@Security	BearerAuth
//	@Router		/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	if !selfOrAdmin(ctx, userID) {
		writeForbidden(w)
		return
	}

	user, err := h.UserService.GetUser(ctx, userID)
	if err != nil {
		writeUserError(w, ctx, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserInfo(user))
}

// HandleUpdate handles profile updates. Name and password are the only
// mutable fields; callers may update themselves, Admins anyone.
//
//	@Summary	Update a user
//	@Tags		Users
//	@Accept		json
//	@Param		id		path	string						true	"User ID"
//	@Param		request	body	procsdk.UpdateUserRequest	true	"Fields to update"
//	@Success	204		"Updated"
//	@Failure	403		{object}	procsdk.ErrorResponse	"Not your account"
//	@Failure	404		{object}	procsdk.ErrorResponse	"Unknown user"
//	@Security	BearerAuth
//	@Router		/v1/users/{id} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	if !selfOrAdmin(ctx, userID) {
		writeForbidden(w)
		return
	}

	var req procsdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	if req.Name != nil {
		if err := h.UserService.UpdateName(ctx, userID, *req.Name); err != nil {
			writeUserError(w, ctx, err)
			return
		}
	}
	if req.Password != nil {
		if err := h.UserService.UpdatePassword(ctx, userID, *req.Password); err != nil {
			writeUserError(w, ctx, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleApprove handles the role approval endpoint.
//
//	@Summary		Approve a user
//	@Description	Assigns a real role to a Pending account. Requires admin:write scope.
//	@Tags			Users
//	@Accept			json
//	@Param			id		path	string						true	"User ID"
//	@Param			request	body	procsdk.ApproveUserRequest	true	"Role to assign"
//	@Success		204		"Approved"
//	@Failure		400		{object}	procsdk.ErrorResponse	"Invalid role"
//	@Failure		404		{object}	procsdk.ErrorResponse	"Unknown user"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/approve [post].
func (h *UsersHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	var req procsdk.ApproveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	err := h.UserService.ApproveUser(ctx, userID, domain.Role(req.Role))
	if errors.Is(err, service.ErrInvalidRole) {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_role",
			ErrorDescription: "Role must be Supplier, Operator, Auditor or Admin",
		})
		return
	}
	if err != nil {
		writeUserError(w, ctx, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles user deletion. Accounts referenced by projects,
// bids or openings cannot be deleted.
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Param		id	path	string	true	"User ID"
//	@Success	204	"Deleted"
//	@Failure	404	{object}	procsdk.ErrorResponse	"Unknown user"
//	@Failure	409	{object}	procsdk.ErrorResponse	"User referenced by audit records"
//	@Security	BearerAuth
//	@Router		/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	err := h.UserService.DeleteUser(ctx, userID)
	if errors.Is(err, service.ErrUserHasRecords) {
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "user_referenced",
			ErrorDescription: "User authored projects, bids or openings and cannot be deleted",
		})
		return
	}
	if err != nil {
		writeUserError(w, ctx, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSetCategories replaces a supplier's business category set.
//
//	@Summary	Set a user's business categories
//	@Tags		Users
//	@Accept		json
//	@Param		id		path	string								true	"User ID"
//	@Param		request	body	procsdk.SetUserCategoriesRequest	true	"Category IDs"
//	@Success	204		"Updated"
//	@Failure	404		{object}	procsdk.ErrorResponse	"Unknown user or category"
//	@Security	BearerAuth
//	@Router		/v1/users/{id}/categories [put].
func (h *UsersHandler) HandleSetCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	var req procsdk.SetUserCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	err := h.UserService.SetCategories(ctx, userID, req.CategoryIDs)
	if errors.Is(err, service.ErrCategoryNotFound) {
		httpx.WriteJSON(w, http.StatusNotFound, procsdk.ErrorResponse{
			Error:            "category_not_found",
			ErrorDescription: "One of the referenced categories does not exist",
		})
		return
	}
	if err != nil {
		writeUserError(w, ctx, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
