package service

import (
	"context"
	"testing"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/internal/procure/store/drivers/sqlite"
	"github.com/upvn/procure/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, name string, role domain.Role) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     name + "@example.com",
		Name:         name,
		PasswordHash: "argon2:dummy",
		Role:         role,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

// seedProject inserts directly through the store so tests can create
// projects whose closing time already passed.
func seedProject(t *testing.T, st store.Store, creatorID, currency string, closing time.Time, auditorOpening bool) domain.Project {
	t.Helper()

	p := domain.Project{
		ID:                     idx.New().String(),
		Title:                  "Office refurbishment",
		Description:            "Carpets and paint",
		Status:                 domain.StatusActive,
		CreatedBy:              creatorID,
		CreatedAt:              time.Now().UTC(),
		ClosingTime:            closing,
		Currency:               currency,
		RequiresAuditorOpening: auditorOpening,
	}
	require.NoError(t, st.Projects().CreateProject(context.Background(), p))
	return p
}

func invite(t *testing.T, st store.Store, projectID string, supplierIDs ...string) {
	t.Helper()
	for i, id := range supplierIDs {
		at := time.Now().UTC().Add(time.Duration(i) * time.Second)
		require.NoError(t, st.Invitations().AddInvitation(context.Background(), projectID, id, at))
	}
}
