package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/idx"
	"github.com/upvn/procure/pkg/slogx"
)

var (
	ErrBiddingClosed = errors.New("project is not accepting bids")
	ErrNotInvited    = errors.New("supplier is not invited to this project")
	ErrBidsSealed    = errors.New("bids are sealed until the project closes")
)

// BidService owns the append-only bid ledger and its sealed-visibility
// reads.
type BidService struct {
	Store store.Store
}

// SubmitBid appends a bid to the ledger. Earlier bids by the same
// supplier are kept; the latest one is the supplier's current bid.
func (s *BidService) SubmitBid(ctx context.Context, projectID, supplierID string, amount domain.Amount, attachments []string) (domain.Bid, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate the amount
	if !amount.Positive() {
		return domain.Bid{}, domain.ErrInvalidAmount
	}

	// 2. Sweep the project, then require it Active
	if _, err := s.Store.Projects().MarkEnded(ctx, projectID, time.Now()); err != nil {
		return domain.Bid{}, err
	}
	p, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Bid{}, ErrProjectNotFound
		}
		return domain.Bid{}, err
	}
	if p.Status != domain.StatusActive {
		return domain.Bid{}, ErrBiddingClosed
	}

	// 3. Only invited suppliers may bid
	invited, err := s.Store.Invitations().IsInvited(ctx, projectID, supplierID)
	if err != nil {
		return domain.Bid{}, err
	}
	if !invited {
		return domain.Bid{}, ErrNotInvited
	}

	// 4. Append; never update
	b := domain.Bid{
		ID:          idx.New().String(),
		ProjectID:   projectID,
		SupplierID:  supplierID,
		Amount:      amount,
		SubmittedAt: time.Now().UTC(),
		Attachments: attachments,
	}
	if err := s.Store.Bids().AppendBid(ctx, b); err != nil {
		return domain.Bid{}, err
	}

	l.Info("bid submitted",
		slog.String("project_id", projectID),
		slog.String("supplier_id", supplierID),
		slog.String("bid_id", b.ID),
	)
	return b, nil
}

// ListBids returns a project's bids subject to sealed visibility:
// suppliers only ever see their own history, and staff see nothing at
// all until the project has left the Active state.
func (s *BidService) ListBids(ctx context.Context, projectID string, viewer domain.User) ([]domain.Bid, error) {
	// 1. Sweep, then load the project for its status
	if _, err := s.Store.Projects().MarkEnded(ctx, projectID, time.Now()); err != nil {
		return nil, err
	}
	p, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	// 2. Suppliers see their own ledger regardless of status
	if viewer.Role == domain.RoleSupplier {
		return s.Store.Bids().ListBidsBySupplier(ctx, projectID, viewer.ID)
	}

	// 3. Staff wait for the seal to lift
	if p.Status == domain.StatusActive {
		return nil, ErrBidsSealed
	}
	return s.Store.Bids().ListBidsByProject(ctx, projectID)
}

// CurrentBids returns the derived current bid per supplier, subject to
// the same visibility rules as ListBids.
func (s *BidService) CurrentBids(ctx context.Context, projectID string, viewer domain.User) (map[string]domain.Bid, error) {
	bids, err := s.ListBids(ctx, projectID, viewer)
	if err != nil {
		return nil, err
	}
	return domain.CurrentBids(bids), nil
}
