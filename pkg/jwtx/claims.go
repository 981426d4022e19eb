package jwtx

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("jwtx: token invalid")
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Claims carries the identity attributes the platform embeds in access
// tokens. Scope is stored space-delimited per RFC 8693 convention.
type Claims struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Scope    string `json:"scope,omitempty"`

	jwt.RegisteredClaims
}

// Scopes returns the scope claim split into fields.
func (c Claims) Scopes() []string {
	s := strings.TrimSpace(c.Scope)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

// ValidateExpiry checks the exp claim against the current time.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil || c.ExpiresAt.Before(time.Now()) {
		return ErrTokenExpired
	}
	return nil
}
