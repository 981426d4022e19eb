package procure_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/upvn/procure/pkg/procsdk"

	"github.com/stretchr/testify/require"
)

// requireAPIError asserts that err is an error envelope with the given
// status and code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *procsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

// TestProcurementFlow walks the whole lifecycle over HTTP: bootstrap,
// onboarding, project setup, sealed bidding and the opening ceremony.
func TestProcurementFlow(t *testing.T) {
	ctx := context.Background()
	client, notifier := setupServer(t)

	health, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	admin := bootstrapAdmin(t, client)

	alice := registerApproved(t, client, admin, notifier, "alice@example.com", "Alice Ltd", "Supplier")
	bob := registerApproved(t, client, admin, notifier, "bob@example.com", "Bob & Co", "Supplier")
	operator := registerApproved(t, client, admin, notifier, "operator@example.com", "Olive Operator", "Operator")

	aliceID := userID(t, admin, "alice@example.com")
	bobID := userID(t, admin, "bob@example.com")

	// Admin tags Alice with a business category.
	category, err := admin.CreateCategory(ctx, "Construction", "Civil works and refurbishment")
	require.NoError(t, err)
	require.NoError(t, admin.SetUserCategories(ctx, aliceID, []string{category.ID}))

	tagged, err := admin.GetUser(ctx, aliceID)
	require.NoError(t, err)
	require.Equal(t, []string{category.ID}, tagged.CategoryIDs)

	// The operator publishes a project with a short bidding window and
	// invites both suppliers.
	closing := time.Now().Add(2 * time.Second)
	project, err := operator.CreateProject(ctx, procsdk.CreateProjectRequest{
		Title:       "Office refurbishment",
		Description: "Carpets and paint",
		ClosingTime: closing,
		Currency:    "USD",
	})
	require.NoError(t, err)
	require.Equal(t, "Active", project.Status)

	require.NoError(t, operator.InviteSupplier(ctx, project.ID, aliceID))
	require.NoError(t, operator.InviteSupplier(ctx, project.ID, bobID))

	invitations, err := operator.ListInvitations(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, invitations.Invitations, 2)

	// Alice revises her bid twice; every submission stays on the ledger.
	for _, amount := range []string{"100.00", "80.00", "120.00"} {
		_, err := alice.SubmitBid(ctx, project.ID, procsdk.SubmitBidRequest{Amount: amount})
		require.NoError(t, err)
	}

	t.Run("suppliers see only their own bids while active", func(t *testing.T) {
		own, err := alice.ListBids(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, own.Bids, 3)

		other, err := bob.ListBids(ctx, project.ID)
		require.NoError(t, err)
		require.Empty(t, other.Bids)
	})

	t.Run("staff are sealed out while active", func(t *testing.T) {
		_, err := operator.ListBids(ctx, project.ID)
		requireAPIError(t, err, http.StatusConflict, "bids_sealed")
	})

	t.Run("opening before the closing time is refused", func(t *testing.T) {
		_, err := operator.OpenProject(ctx, project.ID)
		requireAPIError(t, err, http.StatusConflict, "project_not_ended")
	})

	// Let the bidding window lapse. The flip to Ended happens on the
	// next read, not on a timer.
	time.Sleep(time.Until(closing) + 100*time.Millisecond)

	ended, err := operator.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "Ended", ended.Status)

	t.Run("bids after the closing time are refused", func(t *testing.T) {
		_, err := alice.SubmitBid(ctx, project.ID, procsdk.SubmitBidRequest{Amount: "50.00"})
		requireAPIError(t, err, http.StatusConflict, "bidding_closed")
	})

	record, err := operator.OpenProject(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "Olive Operator", record.OpenerName)
	require.NotNil(t, record.OpenedAt)

	// Both invited suppliers appear: Alice with her latest amount, Bob
	// with an explicit no-bid line.
	require.Len(t, record.Entries, 2)
	require.Equal(t, aliceID, record.Entries[0].SupplierID)
	require.True(t, record.Entries[0].HasBid)
	require.Equal(t, "120.00", *record.Entries[0].Amount)
	require.Equal(t, bobID, record.Entries[1].SupplierID)
	require.False(t, record.Entries[1].HasBid)
	require.Nil(t, record.Entries[1].Amount)

	t.Run("opening is idempotent", func(t *testing.T) {
		again, err := operator.OpenProject(ctx, project.ID)
		require.NoError(t, err)
		require.Equal(t, record, again)

		fetched, err := operator.GetOpeningRecord(ctx, project.ID)
		require.NoError(t, err)
		require.Equal(t, record, fetched)
	})

	t.Run("the ledger is public once opened", func(t *testing.T) {
		all, err := operator.ListBids(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, all.Bids, 3)
	})
}

func TestRegistrationGates(t *testing.T) {
	ctx := context.Background()
	client, notifier := setupServer(t)
	admin := bootstrapAdmin(t, client)

	user, err := client.Register(ctx, procsdk.RegisterRequest{
		Username: "carol@example.com",
		Name:     "Carol",
		Password: password,
	})
	require.NoError(t, err)

	t.Run("login before verification is rejected", func(t *testing.T) {
		_, err := client.Login(ctx, "carol@example.com", password)
		requireAPIError(t, err, http.StatusUnauthorized, "email_not_verified")
	})

	require.NoError(t, client.Verify(ctx, notifier.tokens["carol@example.com"]))

	t.Run("login before approval is rejected", func(t *testing.T) {
		_, err := client.Login(ctx, "carol@example.com", password)
		requireAPIError(t, err, http.StatusForbidden, "pending_approval")
	})

	require.NoError(t, admin.ApproveUser(ctx, user.ID, "Supplier"))

	session, err := client.Login(ctx, "carol@example.com", password)
	require.NoError(t, err)

	t.Run("suppliers cannot reach admin endpoints", func(t *testing.T) {
		_, err := session.ListUsers(ctx)

		var apiErr *procsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})

	t.Run("bad credentials are rejected", func(t *testing.T) {
		_, err := client.Login(ctx, "carol@example.com", "wrong-password")
		requireAPIError(t, err, http.StatusUnauthorized, "invalid_grant")
	})

	t.Run("bootstrap refuses once users exist", func(t *testing.T) {
		_, err := client.Bootstrap(ctx, procsdk.BootstrapRequest{
			Token:    bootstrapToken,
			Username: "late@example.com",
			Name:     "Late",
			Password: password,
		})
		requireAPIError(t, err, http.StatusConflict, "already_bootstrapped")
	})
}

func TestCancelFlow(t *testing.T) {
	ctx := context.Background()
	client, notifier := setupServer(t)
	admin := bootstrapAdmin(t, client)

	alice := registerApproved(t, client, admin, notifier, "alice@example.com", "Alice Ltd", "Supplier")
	operator := registerApproved(t, client, admin, notifier, "operator@example.com", "Olive Operator", "Operator")
	aliceID := userID(t, admin, "alice@example.com")

	t.Run("a project without bids can be cancelled", func(t *testing.T) {
		project, err := operator.CreateProject(ctx, procsdk.CreateProjectRequest{
			Title:       "Stationery supply",
			Description: "Annual contract",
			ClosingTime: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
		require.Equal(t, "TWD", project.Currency)

		require.NoError(t, admin.CancelProject(ctx, project.ID))

		cancelled, err := operator.GetProject(ctx, project.ID)
		require.NoError(t, err)
		require.Equal(t, "Cancelled", cancelled.Status)
	})

	t.Run("a project with bids cannot be cancelled", func(t *testing.T) {
		project, err := operator.CreateProject(ctx, procsdk.CreateProjectRequest{
			Title:       "Fleet maintenance",
			Description: "Two year contract",
			ClosingTime: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
		require.NoError(t, operator.InviteSupplier(ctx, project.ID, aliceID))

		_, err = alice.SubmitBid(ctx, project.ID, procsdk.SubmitBidRequest{Amount: "9500.00"})
		require.NoError(t, err)

		err = admin.CancelProject(ctx, project.ID)
		requireAPIError(t, err, http.StatusConflict, "project_has_bids")

		still, err := operator.GetProject(ctx, project.ID)
		require.NoError(t, err)
		require.Equal(t, "Active", still.Status)
	})

	t.Run("operators lack the cancel scope", func(t *testing.T) {
		project, err := operator.CreateProject(ctx, procsdk.CreateProjectRequest{
			Title:       "Catering",
			Description: "Quarterly",
			ClosingTime: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		err = operator.CancelProject(ctx, project.ID)

		var apiErr *procsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})

	t.Run("operators cannot manage a competitor's invitations", func(t *testing.T) {
		rival := registerApproved(t, client, admin, notifier, "rival@example.com", "Rival Operator", "Operator")

		project, err := operator.CreateProject(ctx, procsdk.CreateProjectRequest{
			Title:       "Signage",
			Description: "Lobby refresh",
			ClosingTime: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		err = rival.InviteSupplier(ctx, project.ID, aliceID)
		requireAPIError(t, err, http.StatusForbidden, "forbidden")

		invitations, err := operator.ListInvitations(ctx, project.ID)
		require.NoError(t, err)
		require.Empty(t, invitations.Invitations)
	})

	t.Run("uninvited suppliers cannot bid", func(t *testing.T) {
		project, err := operator.CreateProject(ctx, procsdk.CreateProjectRequest{
			Title:       "Security audit",
			Description: "One-off engagement",
			ClosingTime: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		_, err = alice.SubmitBid(ctx, project.ID, procsdk.SubmitBidRequest{Amount: "100.00"})
		requireAPIError(t, err, http.StatusForbidden, "not_invited")
	})
}
