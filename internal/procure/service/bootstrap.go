package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/cryptox"
	"github.com/upvn/procure/pkg/idx"
	"github.com/upvn/procure/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the first Admin account on an empty database.
// The operation is guarded by a pre-shared token and refuses to run once
// any user exists.
type BootstrapService struct {
	Store store.Store
	Token string // Pre-configured bootstrap token
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the initial Admin. The account is born verified and
// approved since there is nobody else to approve it.
func (s *BootstrapService) Bootstrap(ctx context.Context, token, username, name, password string) (string, error) {
	l := slogx.FromContext(ctx)

	// 1. Check if already bootstrapped
	if bootstrapped, _ := s.IsBootstrapped(ctx); bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return "", ErrBootstrapAlready
	}

	// 2. Validate provided token
	if s.Token == "" || token != s.Token {
		l.Warn("unauthorized bootstrap attempt")
		return "", ErrBootstrapUnauthorized
	}

	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}

	// 3. Hash password
	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return "", err
	}

	// 4. Create the admin user
	now := time.Now().UTC()
	adminID := idx.New().String()
	err = s.Store.Users().CreateUser(ctx, domain.User{
		ID:           adminID,
		Username:     username,
		Name:         name,
		PasswordHash: passHash,
		Role:         domain.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		l.Error("failed to create admin user", slog.Any("error", err))
		return "", err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", adminID))
	return adminID, nil
}
