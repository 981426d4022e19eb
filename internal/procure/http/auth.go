package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/procsdk"
	"github.com/upvn/procure/pkg/slogx"
)

type LoginHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP handles the login endpoint.
//
//	@Summary		Authenticate
//	@Description	Exchanges username and password for a bearer access token. Accounts must be email-verified and role-approved before they can sign in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		procsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	procsdk.TokenResponse	"Access token"
//	@Failure		400		{object}	procsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	procsdk.ErrorResponse	"Bad credentials or unverified email"
//	@Failure		403		{object}	procsdk.ErrorResponse	"Account awaiting approval"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req procsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	token, expiresAt, user, err := h.IdentityService.Authenticate(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrBadCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, procsdk.ErrorResponse{
			Error:            "invalid_grant",
			ErrorDescription: "Invalid username or password",
		})
		return
	case errors.Is(err, service.ErrNotVerified):
		httpx.WriteJSON(w, http.StatusUnauthorized, procsdk.ErrorResponse{
			Error:            "email_not_verified",
			ErrorDescription: "Confirm your email address before signing in",
		})
		return
	case errors.Is(err, service.ErrNotApproved):
		httpx.WriteJSON(w, http.StatusForbidden, procsdk.ErrorResponse{
			Error:            "pending_approval",
			ErrorDescription: "Your account is awaiting administrator approval",
		})
		return
	case err != nil:
		log.Error("login failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to authenticate",
		})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, procsdk.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
		Scope:       strings.Join(user.Role.Scopes(), " "),
	})
}

type RegisterHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP handles the registration endpoint.
//
//	@Summary		Register an account
//	@Description	Creates a new account awaiting email verification and administrator approval.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		procsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	procsdk.UserInfo		"Created account"
//	@Failure		400		{object}	procsdk.ErrorResponse	"Invalid registration"
//	@Failure		409		{object}	procsdk.ErrorResponse	"Username already taken"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req procsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	user, err := h.IdentityService.Register(ctx, req.Username, req.Name, req.Password, req.CategoryIDs)
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "category_not_found",
			ErrorDescription: "One of the declared business categories does not exist",
		})
		return
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "username_taken",
			ErrorDescription: "That username is already registered",
		})
		return
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "weak_password",
			ErrorDescription: "Password must be at least 8 characters",
		})
		return
	case errors.Is(err, service.ErrRegistrationRejected):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Username and name are required",
		})
		return
	case err != nil:
		log.Error("registration failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to register",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserInfo(user))
}

type VerifyHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP handles the email verification endpoint.
//
//	@Summary		Confirm email address
//	@Description	Redeems the verification token from the signup email.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string					true	"Verification token"
//	@Success		204		"Email confirmed"
//	@Failure		400		{object}	procsdk.ErrorResponse	"Missing, unknown or expired token"
//	@Router			/v1/auth/verify [get].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.URL.Query().Get("token")
	if token == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Missing token parameter",
		})
		return
	}

	err := h.IdentityService.ConfirmVerification(ctx, token)
	switch {
	case errors.Is(err, service.ErrVerificationInvalid):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_token",
			ErrorDescription: "Verification token not recognised",
		})
		return
	case errors.Is(err, service.ErrVerificationExpired):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "token_expired",
			ErrorDescription: "Verification token has expired",
		})
		return
	case err != nil:
		log.Error("verification failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to verify email",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
