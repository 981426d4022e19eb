package procure_test

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	httpapi "github.com/upvn/procure/internal/procure/http"
	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/internal/procure/store/drivers/sqlite"
	"github.com/upvn/procure/pkg/cryptox"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/jwtx"
	"github.com/upvn/procure/pkg/procsdk"
	"github.com/upvn/procure/pkg/slogx"

	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests run the full HTTP stack in-process: real router,
 * middleware, services and an in-memory sqlite store, exercised through
 * the procsdk client.
 */

const (
	bootstrapToken = "test-bootstrap-token-12345"
	adminUsername  = "admin@example.com"
	adminPassword  = "Admin123!supersafe"
	password       = "Supplier123!safe"
)

func TestMain(m *testing.M) {
	// Every request in these tests comes from the same loopback IP, so
	// the production per-IP limits would trip mid-flow.
	generous := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.StrictLimit = generous
	httpx.ModerateLimit = generous
	httpx.LenientLimit = generous

	cryptox.SetPepperPath("")

	os.Exit(m.Run())
}

// captureNotifier records verification tokens per recipient so tests
// can follow the email confirmation step.
type captureNotifier struct {
	tokens map[string]string
}

func (c *captureNotifier) SendVerification(_ context.Context, to, _, token string) error {
	if c.tokens == nil {
		c.tokens = map[string]string{}
	}
	c.tokens[to] = token
	return nil
}

func (c *captureNotifier) SendApprovalNotice(context.Context, string, string, string) error {
	return nil
}

func (c *captureNotifier) SendAdminAlert(context.Context, []string, string, string) error {
	return nil
}

func (c *captureNotifier) SendInvitation(context.Context, string, string, string, time.Time) error {
	return nil
}

// setupServer wires the application by hand (no config, no listener
// port) and returns an SDK client against an httptest server.
func setupServer(t *testing.T) (*procsdk.Client, *captureNotifier) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSigner("procure-e2e", 10*time.Minute)
	require.NoError(t, err)

	notifier := &captureNotifier{}
	logger := slogx.New(slogx.Config{Service: "procure-e2e", Level: "error", Format: "text"})

	router := httpapi.NewRouter(signer, "test", st, logger)
	router.IdentityService = &service.IdentityService{Store: st, Signer: signer, Notifier: notifier}
	router.BootstrapService = &service.BootstrapService{Store: st, Token: bootstrapToken}
	router.UserService = &service.UserService{Store: st, Notifier: notifier}
	router.CategoryService = &service.CategoryService{Store: st}
	router.ProjectService = &service.ProjectService{Store: st, Notifier: notifier}
	router.BidService = &service.BidService{Store: st}
	router.OpeningService = &service.OpeningService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return procsdk.NewClient(srv.URL), notifier
}

// bootstrapAdmin creates and signs in the first Admin.
func bootstrapAdmin(t *testing.T, client *procsdk.Client) *procsdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := client.Bootstrap(ctx, procsdk.BootstrapRequest{
		Token:    bootstrapToken,
		Username: adminUsername,
		Name:     "Administrator",
		Password: adminPassword,
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, adminUsername, adminPassword)
	require.NoError(t, err)
	return session
}

// registerApproved walks a new account through the whole gate: register,
// verify via the captured token, approve with the given role, sign in.
func registerApproved(t *testing.T, client *procsdk.Client, admin *procsdk.Session, notifier *captureNotifier, email, name, role string) *procsdk.Session {
	t.Helper()
	ctx := context.Background()

	user, err := client.Register(ctx, procsdk.RegisterRequest{
		Username: email,
		Name:     name,
		Password: password,
	})
	require.NoError(t, err)

	require.NoError(t, client.Verify(ctx, notifier.tokens[email]))
	require.NoError(t, admin.ApproveUser(ctx, user.ID, role))

	session, err := client.Login(ctx, email, password)
	require.NoError(t, err)
	return session
}

func userID(t *testing.T, admin *procsdk.Session, email string) string {
	t.Helper()

	users, err := admin.ListUsers(context.Background())
	require.NoError(t, err)
	for _, u := range users.Users {
		if u.Username == email {
			return u.ID
		}
	}
	t.Fatalf("user %s not found", email)
	return ""
}
