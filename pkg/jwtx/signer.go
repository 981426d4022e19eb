package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upvn/procure/pkg/idx"
)

// DefaultAccessTokenTTL is how long minted access tokens stay valid.
const DefaultAccessTokenTTL = 8 * time.Hour

// Verifier validates a raw compact JWT and returns its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// Signer mints and verifies Ed25519-signed access tokens. Keys are
// generated at startup and held in memory only; restarting the service
// invalidates outstanding tokens, which is acceptable for this platform.
type Signer struct {
	Issuer string
	TTL    time.Duration

	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	kid  string
}

// NewSigner generates a fresh Ed25519 keypair for the given issuer.
func NewSigner(issuer string, ttl time.Duration) (*Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	return &Signer{
		Issuer: issuer,
		TTL:    ttl,
		priv:   priv,
		pub:    pub,
		kid:    idx.New().String(),
	}, nil
}

// Mint creates a signed access token for the given subject.
func (s *Signer) Mint(subject, username, name, role string, scopes []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.TTL)

	claims := Claims{
		Username: username,
		Name:     name,
		Role:     role,
		Scope:    strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        idx.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = s.kid

	raw, err := token.SignedString(s.priv)
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

// Verify parses and validates a compact token minted by this signer.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, ErrTokenInvalid
		}
		return s.pub, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
