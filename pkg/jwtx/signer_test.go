package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMintAndVerify(t *testing.T) {
	t.Parallel()

	signer, err := NewSigner("procure-test", time.Hour)
	require.NoError(t, err)

	raw, expiresAt, err := signer.Mint("user-1", "alice@example.com", "Alice", "Supplier",
		[]string{"profile:read", "bids:write"})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := signer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Username)
	require.Equal(t, "Supplier", claims.Role)
	require.Equal(t, []string{"profile:read", "bids:write"}, claims.Scopes())
	require.NoError(t, claims.ValidateExpiry())
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	t.Parallel()

	a, err := NewSigner("procure-test", time.Hour)
	require.NoError(t, err)
	b, err := NewSigner("procure-test", time.Hour)
	require.NoError(t, err)

	raw, _, err := a.Mint("user-1", "alice@example.com", "Alice", "Supplier", nil)
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	signer, err := NewSigner("procure-test", time.Hour)
	require.NoError(t, err)

	_, err = signer.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
