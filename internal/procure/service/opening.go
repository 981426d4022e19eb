package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/slogx"
)

var (
	ErrProjectNotEnded   = errors.New("project has not ended")
	ErrProjectNotOpened  = errors.New("project has not been opened")
	ErrOpeningForbidden  = errors.New("caller may not open this project")
)

// OpeningService performs the bid opening ceremony and rebuilds opening
// records. The transition to Opened happens at most once; the record
// itself is derived purely from persisted data, so re-requesting it is a
// re-download, never a second opening.
type OpeningService struct {
	Store store.Store
}

// Open transitions an Ended project to Opened and returns its opening
// record. Calling Open on an already-Opened project returns the same
// record without touching the project, so concurrent openers all walk
// away with identical records and a single recorded opener.
func (s *OpeningService) Open(ctx context.Context, projectID string, opener domain.User) (domain.OpeningRecord, error) {
	l := slogx.FromContext(ctx)

	// 1. Sweep, then load
	if _, err := s.Store.Projects().MarkEnded(ctx, projectID, time.Now()); err != nil {
		return domain.OpeningRecord{}, err
	}
	p, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OpeningRecord{}, ErrProjectNotFound
		}
		return domain.OpeningRecord{}, err
	}

	// 2. Opening permission is per-project: either the designated
	//    auditor path or the project creator. Admin may always open.
	if !canOpen(p, opener) {
		return domain.OpeningRecord{}, ErrOpeningForbidden
	}

	// 3. Already opened: hand back the rebuilt record
	if p.Status == domain.StatusOpened {
		return s.BuildOpeningRecord(ctx, projectID)
	}
	if p.Status != domain.StatusEnded {
		return domain.OpeningRecord{}, ErrProjectNotEnded
	}

	// 4. Conditional write makes the transition at-most-once. Losing
	//    the race is fine: the winner's record is what everyone gets.
	won, err := s.Store.Projects().MarkOpened(ctx, projectID, opener.ID, time.Now().UTC())
	if err != nil {
		return domain.OpeningRecord{}, err
	}
	if won {
		l.Info("project opened",
			slog.String("project_id", projectID),
			slog.String("opened_by", opener.ID),
		)
	}

	return s.BuildOpeningRecord(ctx, projectID)
}

func canOpen(p domain.Project, opener domain.User) bool {
	if opener.Role == domain.RoleAdmin {
		return true
	}
	if p.RequiresAuditorOpening {
		return opener.Role == domain.RoleAuditor
	}
	return opener.ID == p.CreatedBy
}

// BuildOpeningRecord rebuilds the opening record for an Opened project
// from the persisted bids, invitations and users. The build is a pure
// function of that data: bidders appear first, ordered by their earliest
// bid, followed by invited suppliers who never bid, in invitation order.
func (s *OpeningService) BuildOpeningRecord(ctx context.Context, projectID string) (domain.OpeningRecord, error) {
	p, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OpeningRecord{}, ErrProjectNotFound
		}
		return domain.OpeningRecord{}, err
	}
	if p.Status != domain.StatusOpened {
		return domain.OpeningRecord{}, ErrProjectNotOpened
	}

	bids, err := s.Store.Bids().ListBidsByProject(ctx, projectID)
	if err != nil {
		return domain.OpeningRecord{}, err
	}
	invitations, err := s.Store.Invitations().ListInvitations(ctx, projectID)
	if err != nil {
		return domain.OpeningRecord{}, err
	}

	current := domain.CurrentBids(bids)
	order := domain.FirstBidOrder(bids)

	entries := make([]domain.OpeningEntry, 0, len(order)+len(invitations))

	// Bidders first, in earliest-first-bid order
	for _, supplierID := range order {
		b := current[supplierID]
		amount := b.Amount
		submitted := b.SubmittedAt
		entries = append(entries, domain.OpeningEntry{
			SupplierID:  supplierID,
			DisplayName: s.displayName(ctx, supplierID),
			HasBid:      true,
			BidTime:     &submitted,
			Amount:      &amount,
			Attachments: b.Attachments,
		})
	}

	// Then invited suppliers who never bid, in invitation order
	for _, inv := range invitations {
		if _, bid := current[inv.SupplierID]; bid {
			continue
		}
		entries = append(entries, domain.OpeningEntry{
			SupplierID:  inv.SupplierID,
			DisplayName: s.displayName(ctx, inv.SupplierID),
			HasBid:      false,
		})
	}

	rec := domain.OpeningRecord{
		ProjectID:   p.ID,
		Title:       p.Title,
		Description: p.Description,
		Currency:    p.Currency,
		ClosingTime: p.ClosingTime,
		OpenedAt:    p.OpenedAt,
		Entries:     entries,
	}
	if p.OpenedBy != nil {
		rec.OpenerName = s.displayName(ctx, *p.OpenedBy)
	}
	return rec, nil
}

// displayName resolves a user's real name for the audit record. Users
// with bids cannot be deleted, so a miss only happens for pathological
// data; the ID is better than nothing there.
func (s *OpeningService) displayName(ctx context.Context, userID string) string {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return userID
	}
	return u.Name
}
