package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/procsdk"
	"github.com/upvn/procure/pkg/slogx"
)

// viewerFromCtx reconstructs the caller from the authenticated request
// context. Only ID and Role are populated; services that need more load
// the full account themselves.
func viewerFromCtx(ctx context.Context) domain.User {
	return domain.User{
		ID:   httpx.UserIDFromCtx(ctx),
		Role: domain.Role(httpx.RoleFromCtx(ctx)),
	}
}

// selfOrAdmin reports whether the caller is operating on their own
// account or holds the Admin role.
func selfOrAdmin(ctx context.Context, userID string) bool {
	return httpx.UserIDFromCtx(ctx) == userID ||
		domain.Role(httpx.RoleFromCtx(ctx)) == domain.RoleAdmin
}

func writeForbidden(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusForbidden, procsdk.ErrorResponse{
		Error:            "forbidden",
		ErrorDescription: "You may not operate on this resource",
	})
}

// writeUserError maps user service errors that every user endpoint
// shares; handler-specific errors are dispatched before calling this.
func writeUserError(w http.ResponseWriter, ctx context.Context, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		httpx.WriteJSON(w, http.StatusNotFound, procsdk.ErrorResponse{
			Error:            "user_not_found",
			ErrorDescription: "Unknown user",
		})
		return
	}
	if errors.Is(err, service.ErrWeakPassword) || errors.Is(err, service.ErrInvalidProfile) {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid profile fields",
		})
		return
	}
	slogx.FromContext(ctx).Error("user operation failed", "error", err)
	httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
		Error:            "server_error",
		ErrorDescription: "Operation failed",
	})
}

// writeProjectError maps the project errors shared by the project, bid
// and opening endpoints.
func writeProjectError(w http.ResponseWriter, ctx context.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, procsdk.ErrorResponse{
			Error:            "project_not_found",
			ErrorDescription: "Unknown project",
		})
	case errors.Is(err, service.ErrProjectNotActive):
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "project_not_active",
			ErrorDescription: "Project is no longer active",
		})
	default:
		slogx.FromContext(ctx).Error("project operation failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Operation failed",
		})
	}
}
