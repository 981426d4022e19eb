package service

import (
	"context"
	"testing"
	"time"

	"github.com/upvn/procure/internal/procure/domain"

	"github.com/stretchr/testify/require"
)

func TestListProjectsSweepsExpired(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ProjectService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	expired := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Hour), false)
	live := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	byID := map[string]domain.Project{}
	for _, p := range projects {
		byID[p.ID] = p
	}
	require.Equal(t, domain.StatusEnded, byID[expired.ID].Status)
	require.Equal(t, domain.StatusActive, byID[live.ID].Status)

	// The flip is persisted, not just a view: reading the row directly
	// shows Ended.
	p, err := st.Projects().GetProjectByID(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, p.Status)
}

func TestCreateProjectValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ProjectService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, operator.ID, CreateProjectInput{
			Title:       "  ",
			ClosingTime: time.Now().Add(time.Hour),
		})
		require.ErrorIs(t, err, ErrProjectInvalid)
	})

	t.Run("rejects closing time in the past", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, operator.ID, CreateProjectInput{
			Title:       "Laptops",
			ClosingTime: time.Now().Add(-time.Minute),
		})
		require.ErrorIs(t, err, ErrClosingTimeInPast)
	})

	t.Run("defaults currency to TWD", func(t *testing.T) {
		p, err := svc.CreateProject(ctx, operator.ID, CreateProjectInput{
			Title:       "Laptops",
			ClosingTime: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
		require.Equal(t, "TWD", p.Currency)
		require.Equal(t, domain.StatusActive, p.Status)
	})
}

func TestInviteSupplier(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &captureNotifier{}
	svc := &ProjectService{Store: st, Notifier: notifier}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	supplier := seedUser(t, st, "supplier", domain.RoleSupplier)
	auditor := seedUser(t, st, "auditor", domain.RoleAuditor)
	project := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)

	t.Run("invites a supplier", func(t *testing.T) {
		require.NoError(t, svc.InviteSupplier(ctx, project.ID, supplier.ID, operator))

		invited, err := st.Invitations().IsInvited(ctx, project.ID, supplier.ID)
		require.NoError(t, err)
		require.True(t, invited)
		require.Equal(t, 1, notifier.invitations)
	})

	t.Run("re-inviting is a no-op", func(t *testing.T) {
		require.NoError(t, svc.InviteSupplier(ctx, project.ID, supplier.ID, operator))

		invitations, err := st.Invitations().ListInvitations(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, invitations, 1)
	})

	t.Run("only the creator or an admin invites", func(t *testing.T) {
		rival := seedUser(t, st, "rival", domain.RoleOperator)
		admin := seedUser(t, st, "admin", domain.RoleAdmin)

		require.ErrorIs(t, svc.InviteSupplier(ctx, project.ID, supplier.ID, rival), ErrInviteForbidden)
		require.NoError(t, svc.InviteSupplier(ctx, project.ID, supplier.ID, admin))
	})

	t.Run("rejects non-suppliers", func(t *testing.T) {
		require.ErrorIs(t, svc.InviteSupplier(ctx, project.ID, auditor.ID, operator), ErrNotSupplier)
	})

	t.Run("rejects unknown users", func(t *testing.T) {
		require.ErrorIs(t, svc.InviteSupplier(ctx, project.ID, "missing", operator), ErrUserNotFound)
	})

	t.Run("rejects expired projects", func(t *testing.T) {
		old := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Hour), false)
		require.ErrorIs(t, svc.InviteSupplier(ctx, old.ID, supplier.ID, operator), ErrProjectNotActive)
	})
}

func TestCancelProject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ProjectService{Store: st}
	bids := &BidService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	supplier := seedUser(t, st, "supplier", domain.RoleSupplier)

	t.Run("cancels an active project with no bids", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)

		require.NoError(t, svc.CancelProject(ctx, p.ID))

		got, err := st.Projects().GetProjectByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusCancelled, got.Status)
	})

	t.Run("refuses once a bid exists", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)
		invite(t, st, p.ID, supplier.ID)
		_, err := bids.SubmitBid(ctx, p.ID, supplier.ID, 50000, nil)
		require.NoError(t, err)

		require.ErrorIs(t, svc.CancelProject(ctx, p.ID), ErrProjectHasBids)

		got, err := st.Projects().GetProjectByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("refuses an expired project", func(t *testing.T) {
		p := seedProject(t, st, operator.ID, "TWD", time.Now().Add(-time.Hour), false)
		require.ErrorIs(t, svc.CancelProject(ctx, p.ID), ErrProjectNotActive)

		// The failed cancel still swept it to Ended.
		got, err := st.Projects().GetProjectByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusEnded, got.Status)
	})

	t.Run("unknown project", func(t *testing.T) {
		require.ErrorIs(t, svc.CancelProject(ctx, "missing"), ErrProjectNotFound)
	})
}
