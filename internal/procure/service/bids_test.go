package service

import (
	"context"
	"testing"
	"time"

	"github.com/upvn/procure/internal/procure/domain"

	"github.com/stretchr/testify/require"
)

func TestSubmitBid(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &BidService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	supplier := seedUser(t, st, "supplier", domain.RoleSupplier)
	outsider := seedUser(t, st, "outsider", domain.RoleSupplier)
	project := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)
	invite(t, st, project.ID, supplier.ID)

	t.Run("appends bids, never overwrites", func(t *testing.T) {
		for _, amount := range []domain.Amount{10000, 8000, 12000} {
			_, err := svc.SubmitBid(ctx, project.ID, supplier.ID, amount, nil)
			require.NoError(t, err)
		}

		history, err := st.Bids().ListBidsByProject(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, history, 3)

		// Current bid is the latest, not the lowest: 100 -> 80 -> 120
		// leaves 120 standing.
		current := domain.CurrentBids(history)
		require.Equal(t, domain.Amount(12000), current[supplier.ID].Amount)
	})

	t.Run("rejects uninvited suppliers", func(t *testing.T) {
		_, err := svc.SubmitBid(ctx, project.ID, outsider.ID, 9000, nil)
		require.ErrorIs(t, err, ErrNotInvited)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := svc.SubmitBid(ctx, project.ID, supplier.ID, 0, nil)
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("rejects bids after the closing time", func(t *testing.T) {
		expired := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Minute), false)
		invite(t, st, expired.ID, supplier.ID)

		_, err := svc.SubmitBid(ctx, expired.ID, supplier.ID, 9000, nil)
		require.ErrorIs(t, err, ErrBiddingClosed)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.SubmitBid(ctx, "missing", supplier.ID, 9000, nil)
		require.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestListBidsSealedVisibility(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &BidService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	alice := seedUser(t, st, "alice", domain.RoleSupplier)
	bob := seedUser(t, st, "bob", domain.RoleSupplier)
	project := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)
	invite(t, st, project.ID, alice.ID, bob.ID)

	_, err := svc.SubmitBid(ctx, project.ID, alice.ID, 50000, nil)
	require.NoError(t, err)
	_, err = svc.SubmitBid(ctx, project.ID, bob.ID, 48000, nil)
	require.NoError(t, err)

	t.Run("supplier sees only their own bids while active", func(t *testing.T) {
		bids, err := svc.ListBids(ctx, project.ID, alice)
		require.NoError(t, err)
		require.Len(t, bids, 1)
		require.Equal(t, alice.ID, bids[0].SupplierID)
	})

	t.Run("staff are sealed out while active", func(t *testing.T) {
		_, err := svc.ListBids(ctx, project.ID, operator)
		require.ErrorIs(t, err, ErrBidsSealed)
	})

	t.Run("staff see everything once ended", func(t *testing.T) {
		ok, err := st.Projects().MarkEnded(ctx, project.ID, time.Now().Add(2*time.Hour))
		require.NoError(t, err)
		require.True(t, ok)

		bids, err := svc.ListBids(ctx, project.ID, operator)
		require.NoError(t, err)
		require.Len(t, bids, 2)
	})

	t.Run("supplier still sees only their own after ending", func(t *testing.T) {
		bids, err := svc.ListBids(ctx, project.ID, bob)
		require.NoError(t, err)
		require.Len(t, bids, 1)
		require.Equal(t, bob.ID, bids[0].SupplierID)
	})
}
