package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/notify"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/idx"
	"github.com/upvn/procure/pkg/slogx"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectNotActive  = errors.New("project is not active")
	ErrProjectHasBids    = errors.New("project has bids and cannot be cancelled")
	ErrClosingTimeInPast = errors.New("closing time must be in the future")
	ErrProjectInvalid    = errors.New("project title required")
	ErrNotSupplier       = errors.New("invited user is not a supplier")
	ErrInviteForbidden   = errors.New("caller may not invite suppliers to this project")
)

// ProjectService owns the project lifecycle: creation, the lazy expiry
// sweep, invitations and cancellation. There is no background timer;
// Active projects past their closing time flip to Ended the next time
// anything reads them.
type ProjectService struct {
	Store    store.Store
	Notifier notify.Notifier
}

// CreateProjectInput carries the creation parameters. Currency defaults
// to TWD when empty.
type CreateProjectInput struct {
	Title                  string
	Description            string
	ClosingTime            time.Time
	Currency               string
	Attachments            []string
	RequiresAuditorOpening bool
}

// CreateProject creates a new Active project owned by creatorID.
func (s *ProjectService) CreateProject(ctx context.Context, creatorID string, in CreateProjectInput) (domain.Project, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate
	if strings.TrimSpace(in.Title) == "" {
		return domain.Project{}, ErrProjectInvalid
	}
	now := time.Now().UTC()
	if !in.ClosingTime.After(now) {
		return domain.Project{}, ErrClosingTimeInPast
	}

	currency := in.Currency
	if currency == "" {
		currency = "TWD"
	}

	// 2. Insert
	p := domain.Project{
		ID:                     idx.New().String(),
		Title:                  in.Title,
		Description:            in.Description,
		Status:                 domain.StatusActive,
		CreatedBy:              creatorID,
		CreatedAt:              now,
		ClosingTime:            in.ClosingTime.UTC(),
		Currency:               currency,
		Attachments:            in.Attachments,
		RequiresAuditorOpening: in.RequiresAuditorOpening,
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, err
	}

	l.Info("project created",
		slog.String("project_id", p.ID),
		slog.String("created_by", creatorID),
	)
	return p, nil
}

// ListProjects sweeps expired projects to Ended, then returns all
// projects newest-first. The sweep makes the expiry observable and
// persistent even though nothing runs on a timer.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	l := slogx.FromContext(ctx)

	n, err := s.Store.Projects().EndExpiredProjects(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if n > 0 {
		l.Info("expired projects swept to ended", slog.Int64("count", n))
	}

	return s.Store.Projects().ListProjects(ctx)
}

// GetProject returns a single project, sweeping it first so a caller
// never observes an Active project past its closing time.
func (s *ProjectService) GetProject(ctx context.Context, id string) (domain.Project, error) {
	if _, err := s.Store.Projects().MarkEnded(ctx, id, time.Now()); err != nil {
		return domain.Project{}, err
	}
	p, err := s.Store.Projects().GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		return domain.Project{}, err
	}
	return p, nil
}

// InviteSupplier adds a supplier to a project's invitation set.
// Re-inviting the same supplier is a no-op. Invitations are only
// accepted while the project is Active, and only from the project
// creator or an Admin.
func (s *ProjectService) InviteSupplier(ctx context.Context, projectID, supplierID string, caller domain.User) error {
	l := slogx.FromContext(ctx)

	// 1. Sweep, then check the project is still Active
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if p.Status != domain.StatusActive {
		return ErrProjectNotActive
	}

	// 2. Mutation rights belong to the creator; Admin overrides
	if caller.ID != p.CreatedBy && caller.Role != domain.RoleAdmin {
		return ErrInviteForbidden
	}

	// 3. The invitee must hold the Supplier role
	supplier, err := s.Store.Users().GetUserByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if supplier.Role != domain.RoleSupplier {
		return ErrNotSupplier
	}

	// 4. Idempotent insert
	if err := s.Store.Invitations().AddInvitation(ctx, projectID, supplierID, time.Now().UTC()); err != nil {
		return err
	}

	// 5. Best-effort notification; the invitation stands either way
	if err := s.Notifier.SendInvitation(ctx, supplier.Username, supplier.Name, p.Title, p.ClosingTime); err != nil {
		l.Warn("failed to send invitation email",
			slog.String("supplier_id", supplierID),
			slog.String("error", err.Error()),
		)
	}

	l.Info("supplier invited",
		slog.String("project_id", projectID),
		slog.String("supplier_id", supplierID),
	)
	return nil
}

// ListInvitations returns a project's invitations in invitation order.
func (s *ProjectService) ListInvitations(ctx context.Context, projectID string) ([]domain.Invitation, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Store.Invitations().ListInvitations(ctx, projectID)
}

// CancelProject abandons an Active project with zero bids. The guard
// lives in a single conditional write, so a bid landing concurrently
// cannot be silenced by the cancellation.
func (s *ProjectService) CancelProject(ctx context.Context, projectID string) error {
	l := slogx.FromContext(ctx)

	// 1. Sweep first: an expired project is Ended, not cancellable
	if _, err := s.Store.Projects().MarkEnded(ctx, projectID, time.Now()); err != nil {
		return err
	}

	// 2. Conditional write carries both guards (Active, zero bids)
	ok, err := s.Store.Projects().MarkCancelled(ctx, projectID)
	if err != nil {
		return err
	}
	if ok {
		l.Info("project cancelled", slog.String("project_id", projectID))
		return nil
	}

	// 3. Guard failed: report which one
	p, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	if p.Status != domain.StatusActive {
		return ErrProjectNotActive
	}
	return ErrProjectHasBids
}
