package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/notify"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/cryptox"
	"github.com/upvn/procure/pkg/slogx"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserHasRecords = errors.New("user is referenced by projects or bids")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidProfile = errors.New("profile fields invalid")
)

// UserService covers account administration: listing, profile updates,
// role approval and deletion.
type UserService struct {
	Store    store.Store
	Notifier notify.Notifier
}

// GetUser fetches a user by id, with category associations populated.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	user.CategoryIDs, err = s.Store.Categories().ListUserCategories(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ListUsers returns all accounts oldest-first with category associations
// populated.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].CategoryIDs, err = s.Store.Categories().ListUserCategories(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return users, nil
}

// ListPendingUsers returns accounts awaiting role approval.
func (s *UserService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsersByRole(ctx, domain.RolePending)
}

// UpdateName changes a user's display name.
func (s *UserService) UpdateName(ctx context.Context, userID, name string) error {
	if name == "" {
		return ErrInvalidProfile
	}
	if err := s.Store.Users().UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UpdatePassword replaces a user's password.
func (s *UserService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ApproveUser assigns a real role to an account (the Admin approval
// action) and mails the user an approval notice.
func (s *UserService) ApproveUser(ctx context.Context, userID string, role domain.Role) error {
	l := slogx.FromContext(ctx)

	// 1. Only real roles can be assigned
	if !role.Valid() || role == domain.RolePending {
		return ErrInvalidRole
	}

	// 2. Resolve the user first so the notice has a name and address
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	// 3. Assign the role
	if err := s.Store.Users().UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// 4. Tell the user; failure is logged and swallowed
	if err := s.Notifier.SendApprovalNotice(ctx, user.Username, user.Name, string(role)); err != nil {
		l.Warn("failed to send approval notice",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	l.Info("user approved",
		slog.String("user_id", userID),
		slog.String("role", string(role)),
	)
	return nil
}

// DeleteUser removes an account. Deletion is restricted while the user
// still authored projects, openings or bids, since those are audit
// records.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	referenced, err := s.Store.Users().HasAuthoredRecords(ctx, userID)
	if err != nil {
		return err
	}
	if referenced {
		return ErrUserHasRecords
	}
	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// SetCategories replaces a supplier's business category associations.
// Every referenced category must exist.
func (s *UserService) SetCategories(ctx context.Context, userID string, categoryIDs []string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		for _, id := range categoryIDs {
			if _, err := tx.Categories().GetCategoryByID(ctx, id); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
		}
		return tx.Categories().SetUserCategories(ctx, userID, categoryIDs)
	})
}
