package service

import (
	"context"
	"testing"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/pkg/cryptox"
	"github.com/upvn/procure/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

// captureNotifier records outgoing mail so tests can redeem the
// verification token.
type captureNotifier struct {
	verificationToken string
	approvalNotices   int
	adminAlerts       int
	invitations       int
}

func (c *captureNotifier) SendVerification(_ context.Context, _, _, token string) error {
	c.verificationToken = token
	return nil
}

func (c *captureNotifier) SendApprovalNotice(context.Context, string, string, string) error {
	c.approvalNotices++
	return nil
}

func (c *captureNotifier) SendAdminAlert(context.Context, []string, string, string) error {
	c.adminAlerts++
	return nil
}

func (c *captureNotifier) SendInvitation(context.Context, string, string, string, time.Time) error {
	c.invitations++
	return nil
}

func newIdentityService(t *testing.T, notifier *captureNotifier) *IdentityService {
	t.Helper()
	cryptox.SetPepperPath("")

	signer, err := jwtx.NewSigner("test-issuer", time.Minute)
	require.NoError(t, err)

	return &IdentityService{
		Store:    newTestStore(t),
		Signer:   signer,
		Notifier: notifier,
	}
}

func TestRegistrationAndLoginFlow(t *testing.T) {
	ctx := context.Background()
	notifier := &captureNotifier{}
	svc := newIdentityService(t, notifier)
	users := &UserService{Store: svc.Store, Notifier: notifier}

	// 1. Register: account starts unverified with the Pending role
	user, err := svc.Register(ctx, "alice@example.com", "Alice", "sup3r-secret", nil)
	require.NoError(t, err)
	require.Equal(t, domain.RolePending, user.Role)
	require.False(t, user.Verified)
	require.NotEmpty(t, notifier.verificationToken)

	// The raw token is never stored, only a fingerprint.
	require.NotNil(t, user.VerificationHash)
	require.NotEqual(t, notifier.verificationToken, *user.VerificationHash)

	// 2. Login is blocked until the email is verified
	_, _, _, err = svc.Authenticate(ctx, "alice@example.com", "sup3r-secret")
	require.ErrorIs(t, err, ErrNotVerified)

	// 3. Verify, which also alerts the admins
	require.NoError(t, svc.ConfirmVerification(ctx, notifier.verificationToken))

	// 4. Still blocked: the role is Pending until an Admin approves
	_, _, _, err = svc.Authenticate(ctx, "alice@example.com", "sup3r-secret")
	require.ErrorIs(t, err, ErrNotApproved)

	// 5. Approve as Supplier
	require.NoError(t, users.ApproveUser(ctx, user.ID, domain.RoleSupplier))
	require.Equal(t, 1, notifier.approvalNotices)

	// 6. Login now succeeds and mints a verifiable token
	token, expiresAt, authed, err := svc.Authenticate(ctx, "alice@example.com", "sup3r-secret")
	require.NoError(t, err)
	require.Equal(t, domain.RoleSupplier, authed.Role)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, string(domain.RoleSupplier), claims.Role)
	require.Contains(t, claims.Scopes(), "bids:write")
}

func TestAuthenticateRejections(t *testing.T) {
	ctx := context.Background()
	notifier := &captureNotifier{}
	svc := newIdentityService(t, notifier)

	_, err := svc.Register(ctx, "bob@example.com", "Bob", "sup3r-secret", nil)
	require.NoError(t, err)

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		_, _, _, unknownErr := svc.Authenticate(ctx, "nobody@example.com", "sup3r-secret")
		_, _, _, wrongErr := svc.Authenticate(ctx, "bob@example.com", "wrong-password")

		require.ErrorIs(t, unknownErr, ErrBadCredentials)
		require.ErrorIs(t, wrongErr, ErrBadCredentials)
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	notifier := &captureNotifier{}
	svc := newIdentityService(t, notifier)

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := svc.Register(ctx, "carol@example.com", "Carol", "short", nil)
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		_, err := svc.Register(ctx, "carol@example.com", "Carol", "sup3r-secret", nil)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "carol@example.com", "Carol Again", "sup3r-secret", nil)
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		_, err := svc.Register(ctx, "erin@example.com", "Erin", "sup3r-secret", []string{"missing"})
		require.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("records declared categories", func(t *testing.T) {
		categories := &CategoryService{Store: svc.Store}
		cat, err := categories.CreateCategory(ctx, "Construction", "")
		require.NoError(t, err)

		user, err := svc.Register(ctx, "erin@example.com", "Erin", "sup3r-secret", []string{cat.ID})
		require.NoError(t, err)
		require.Equal(t, []string{cat.ID}, user.CategoryIDs)

		stored, err := svc.Store.Categories().ListUserCategories(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, []string{cat.ID}, stored)
	})
}

func TestConfirmVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown tokens", func(t *testing.T) {
		svc := newIdentityService(t, &captureNotifier{})
		err := svc.ConfirmVerification(ctx, "not-a-real-token")
		require.ErrorIs(t, err, ErrVerificationInvalid)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		notifier := &captureNotifier{}
		svc := newIdentityService(t, notifier)
		svc.VerificationTTL = time.Nanosecond

		_, err := svc.Register(ctx, "dave@example.com", "Dave", "sup3r-secret", nil)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		err = svc.ConfirmVerification(ctx, notifier.verificationToken)
		require.ErrorIs(t, err, ErrVerificationExpired)
	})
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	cryptox.SetPepperPath("")

	st := newTestStore(t)
	svc := &BootstrapService{Store: st, Token: "pre-shared"}

	t.Run("rejects a bad token", func(t *testing.T) {
		_, err := svc.Bootstrap(ctx, "wrong", "root@example.com", "Root", "sup3r-secret")
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("creates an approved, verified admin", func(t *testing.T) {
		adminID, err := svc.Bootstrap(ctx, "pre-shared", "root@example.com", "Root", "sup3r-secret")
		require.NoError(t, err)

		admin, err := st.Users().GetUserByID(ctx, adminID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, admin.Role)
		require.True(t, admin.Verified)
	})

	t.Run("refuses once a user exists", func(t *testing.T) {
		_, err := svc.Bootstrap(ctx, "pre-shared", "root2@example.com", "Root", "sup3r-secret")
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})
}

func TestUpdateName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st, Notifier: &captureNotifier{}}

	u := seedUser(t, st, "renate", domain.RoleSupplier)

	require.ErrorIs(t, users.UpdateName(ctx, u.ID, ""), ErrInvalidProfile)

	require.NoError(t, users.UpdateName(ctx, u.ID, "Renate GmbH"))
	got, err := users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Renate GmbH", got.Name)
}

func TestDeleteUserRestricted(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st, Notifier: &captureNotifier{}}
	bids := &BidService{Store: st}

	operator := seedUser(t, st, "operator", domain.RoleOperator)
	supplier := seedUser(t, st, "supplier", domain.RoleSupplier)
	idle := seedUser(t, st, "idle", domain.RoleSupplier)

	project := seedProject(t, st, operator.ID, "TWD", time.Now().Add(time.Hour), false)
	invite(t, st, project.ID, supplier.ID)
	_, err := bids.SubmitBid(ctx, project.ID, supplier.ID, 50000, nil)
	require.NoError(t, err)

	t.Run("project creators cannot be deleted", func(t *testing.T) {
		require.ErrorIs(t, users.DeleteUser(ctx, operator.ID), ErrUserHasRecords)
	})

	t.Run("bidders cannot be deleted", func(t *testing.T) {
		require.ErrorIs(t, users.DeleteUser(ctx, supplier.ID), ErrUserHasRecords)
	})

	t.Run("users without records can", func(t *testing.T) {
		require.NoError(t, users.DeleteUser(ctx, idle.ID))
		_, err := users.GetUser(ctx, idle.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
