package domain

import "time"

type User struct {
	ID           string
	Username     string // login identifier (email address)
	Name         string // display name, shown in audit records
	PasswordHash string // argon2 encoded
	Role         Role
	Verified     bool // email confirmed via verification token

	// Verification token fingerprint + expiry (nullable, cleared once used).
	VerificationHash      *string
	VerificationExpiresAt *time.Time

	// Business category IDs (suppliers only). Populated on demand.
	CategoryIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanLogin reports whether the account has passed both gates: email
// verification and admin role approval.
func (u User) CanLogin() bool {
	return u.Verified && u.Role != RolePending
}
