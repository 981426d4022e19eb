package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/notify"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/cryptox"
	"github.com/upvn/procure/pkg/idx"
	"github.com/upvn/procure/pkg/jwtx"
	"github.com/upvn/procure/pkg/slogx"

	"github.com/google/uuid"
)

var (
	// ErrBadCredentials covers both unknown usernames and wrong
	// passwords so login responses cannot be used to probe accounts.
	ErrBadCredentials = errors.New("invalid username or password")

	ErrNotVerified = errors.New("email address not verified")
	ErrNotApproved = errors.New("account awaiting administrator approval")

	ErrUsernameTaken        = errors.New("username already registered")
	ErrVerificationInvalid  = errors.New("verification token not recognised")
	ErrVerificationExpired  = errors.New("verification token expired")
	ErrWeakPassword         = errors.New("password does not meet requirements")
	ErrRegistrationRejected = errors.New("registration rejected")
)

// DefaultVerificationTTL is how long a signup confirmation link stays
// valid.
const DefaultVerificationTTL = 24 * time.Hour

const minPasswordLength = 8

// IdentityService handles registration, email verification and login.
type IdentityService struct {
	Store    store.Store
	Signer   *jwtx.Signer
	Notifier notify.Notifier

	// VerificationTTL overrides DefaultVerificationTTL when non-zero.
	VerificationTTL time.Duration
}

func (s *IdentityService) verificationTTL() time.Duration {
	if s.VerificationTTL > 0 {
		return s.VerificationTTL
	}
	return DefaultVerificationTTL
}

// Register creates a new unverified account with the Pending role and
// mails the verification link. Suppliers may declare their business
// categories up front. The raw verification token is never stored,
// only its fingerprint.
func (s *IdentityService) Register(ctx context.Context, username, name, password string, categoryIDs []string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate inputs
	if username == "" || name == "" {
		return domain.User{}, ErrRegistrationRejected
	}
	if len(password) < minPasswordLength {
		return domain.User{}, ErrWeakPassword
	}
	for _, id := range categoryIDs {
		if _, err := s.Store.Categories().GetCategoryByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.User{}, ErrCategoryNotFound
			}
			return domain.User{}, err
		}
	}

	// 2. Hash password
	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Generate the verification token and its stored fingerprint
	token := uuid.NewString()
	tokenHash := cryptox.FingerprintToken(token)

	now := time.Now().UTC()
	expiresAt := now.Add(s.verificationTTL())

	user := domain.User{
		ID:                    idx.New().String(),
		Username:              username,
		Name:                  name,
		PasswordHash:          passHash,
		Role:                  domain.RolePending,
		Verified:              false,
		VerificationHash:      &tokenHash,
		VerificationExpiresAt: &expiresAt,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	// 4. Insert; a duplicate username surfaces as ErrUsernameTaken
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		l.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	// 5. Record the declared categories
	if len(categoryIDs) > 0 {
		if err := s.Store.Categories().SetUserCategories(ctx, user.ID, categoryIDs); err != nil {
			l.Error("failed to set user categories", slog.Any("error", err))
			return domain.User{}, err
		}
		user.CategoryIDs = categoryIDs
	}

	// 6. Mail the confirmation link; delivery failure never fails signup
	if err := s.Notifier.SendVerification(ctx, username, name, token); err != nil {
		l.Warn("failed to send verification email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// ConfirmVerification redeems a verification token. On success the
// account is marked verified and every Admin is alerted that a
// registration awaits role approval.
func (s *IdentityService) ConfirmVerification(ctx context.Context, token string) error {
	l := slogx.FromContext(ctx)

	// 1. Look the token fingerprint up
	user, err := s.Store.Users().GetUserByVerificationHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrVerificationInvalid
		}
		return err
	}

	// 2. Reject expired tokens
	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return ErrVerificationExpired
	}

	// 3. Flip verified and clear the token fields
	if err := s.Store.Users().MarkVerified(ctx, user.ID); err != nil {
		return err
	}

	// 4. Alert the Admins; failure is logged and swallowed
	admins, err := s.Store.Users().ListUsersByRole(ctx, domain.RoleAdmin)
	if err != nil {
		l.Warn("failed to list admins for alert", slog.Any("error", err))
		return nil
	}
	addrs := make([]string, 0, len(admins))
	for _, a := range admins {
		addrs = append(addrs, a.Username)
	}
	if err := s.Notifier.SendAdminAlert(ctx, addrs, user.Name, user.Username); err != nil {
		l.Warn("failed to send admin alert", slog.Any("error", err))
	}

	l.Info("email verified", slog.String("user_id", user.ID))
	return nil
}

// Authenticate checks credentials and both account gates, then mints an
// access token carrying the role's scopes.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (string, time.Time, domain.User, error) {
	l := slogx.FromContext(ctx)

	// 1. Resolve the account; unknown users get the same error as a
	//    wrong password
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", time.Time{}, domain.User{}, ErrBadCredentials
		}
		return "", time.Time{}, domain.User{}, err
	}

	// 2. Verify the password
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", time.Time{}, domain.User{}, ErrBadCredentials
		}
		return "", time.Time{}, domain.User{}, err
	}

	// 3. Both gates must have passed: email verification first, then
	//    Admin role approval
	if !user.Verified {
		return "", time.Time{}, domain.User{}, ErrNotVerified
	}
	if user.Role == domain.RolePending {
		return "", time.Time{}, domain.User{}, ErrNotApproved
	}

	// 4. Mint the access token
	token, expiresAt, err := s.Signer.Mint(user.ID, user.Username, user.Name, string(user.Role), user.Role.Scopes())
	if err != nil {
		l.Error("failed to mint token", slog.Any("error", err))
		return "", time.Time{}, domain.User{}, err
	}

	l.Info("user authenticated",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return token, expiresAt, user, nil
}
