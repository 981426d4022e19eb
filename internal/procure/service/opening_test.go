package service

import (
	"context"
	"testing"
	"time"

	"github.com/upvn/procure/internal/procure/domain"

	"github.com/stretchr/testify/require"
)

func TestOpenHappyPath(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bids := &BidService{Store: st}
	svc := &OpeningService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	alice := seedUser(t, st, "alice", domain.RoleSupplier)
	bob := seedUser(t, st, "bob", domain.RoleSupplier)
	carol := seedUser(t, st, "carol", domain.RoleSupplier)

	project := seedProject(t, st, operator.ID, "USD", time.Now().Add(time.Hour), false)
	invite(t, st, project.ID, alice.ID, bob.ID, carol.ID)

	// Carol bids first, then Alice revises 100 -> 80 -> 120. Bob never
	// bids.
	_, err := bids.SubmitBid(ctx, project.ID, carol.ID, 9500, nil)
	require.NoError(t, err)
	for _, amount := range []domain.Amount{10000, 8000, 12000} {
		_, err := bids.SubmitBid(ctx, project.ID, alice.ID, amount, nil)
		require.NoError(t, err)
	}

	ok, err := st.Projects().MarkEnded(ctx, project.ID, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	require.True(t, ok)

	rec, err := svc.Open(ctx, project.ID, operator)
	require.NoError(t, err)

	require.Equal(t, project.ID, rec.ProjectID)
	require.Equal(t, "USD", rec.Currency)
	require.Equal(t, "operator", rec.OpenerName)
	require.NotNil(t, rec.OpenedAt)

	// Every invited supplier appears exactly once: bidders first in
	// earliest-first-bid order, then non-bidders.
	require.Len(t, rec.Entries, 3)
	require.Equal(t, carol.ID, rec.Entries[0].SupplierID)
	require.Equal(t, alice.ID, rec.Entries[1].SupplierID)
	require.Equal(t, bob.ID, rec.Entries[2].SupplierID)

	require.True(t, rec.Entries[0].HasBid)
	require.True(t, rec.Entries[1].HasBid)
	require.Equal(t, domain.Amount(12000), *rec.Entries[1].Amount)

	require.False(t, rec.Entries[2].HasBid)
	require.Nil(t, rec.Entries[2].Amount)
	require.Nil(t, rec.Entries[2].BidTime)

	t.Run("project is opened with recorded opener", func(t *testing.T) {
		p, err := st.Projects().GetProjectByID(ctx, project.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusOpened, p.Status)
		require.NotNil(t, p.OpenedBy)
		require.Equal(t, operator.ID, *p.OpenedBy)
	})

	t.Run("re-opening returns an identical record", func(t *testing.T) {
		again, err := svc.Open(ctx, project.ID, operator)
		require.NoError(t, err)
		require.Equal(t, rec, again)

		// And the opener did not change.
		p, err := st.Projects().GetProjectByID(ctx, project.ID)
		require.NoError(t, err)
		require.Equal(t, operator.ID, *p.OpenedBy)
	})

	t.Run("rebuild is idempotent", func(t *testing.T) {
		rebuilt, err := svc.BuildOpeningRecord(ctx, project.ID)
		require.NoError(t, err)
		require.Equal(t, rec, rebuilt)
	})
}

func TestOpenGuards(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &OpeningService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	other := seedUser(t, st, "other", domain.RoleOperator)
	auditor := seedUser(t, st, "auditor", domain.RoleAuditor)
	admin := seedUser(t, st, "admin", domain.RoleAdmin)

	t.Run("cannot open an active project", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)
		_, err := svc.Open(ctx, p.ID, operator)
		require.ErrorIs(t, err, ErrProjectNotEnded)
	})

	t.Run("only the creator opens a creator-opened project", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Hour), false)

		_, err := svc.Open(ctx, p.ID, other)
		require.ErrorIs(t, err, ErrOpeningForbidden)

		_, err = svc.Open(ctx, p.ID, operator)
		require.NoError(t, err)
	})

	t.Run("auditor path excludes the creator", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Hour), true)

		_, err := svc.Open(ctx, p.ID, operator)
		require.ErrorIs(t, err, ErrOpeningForbidden)

		_, err = svc.Open(ctx, p.ID, auditor)
		require.NoError(t, err)
	})

	t.Run("admin may always open", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Hour), true)
		_, err := svc.Open(ctx, p.ID, admin)
		require.NoError(t, err)
	})

	t.Run("the opened transition happens at most once", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Hour), false)
		_, err := st.Projects().MarkEnded(ctx, p.ID, time.Now())
		require.NoError(t, err)

		won, err := st.Projects().MarkOpened(ctx, p.ID, operator.ID, time.Now())
		require.NoError(t, err)
		require.True(t, won)

		won, err = st.Projects().MarkOpened(ctx, p.ID, admin.ID, time.Now())
		require.NoError(t, err)
		require.False(t, won)

		got, err := st.Projects().GetProjectByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, operator.ID, *got.OpenedBy)
	})

	t.Run("record of an unopened project is refused", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)
		_, err := svc.BuildOpeningRecord(ctx, p.ID)
		require.ErrorIs(t, err, ErrProjectNotOpened)
	})
}
