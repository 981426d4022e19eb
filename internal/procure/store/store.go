package store

import (
	"context"
	"errors"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Projects() Projects
	Invitations() Invitations
	Bids() Bids
	Categories() Categories

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back, otherwise
	// committed. This is the recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and identity resolution.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByVerificationHash returns the user holding the given
	// verification token fingerprint, verified or not.
	GetUserByVerificationHash(ctx context.Context, hash string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by creation date (oldest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListUsersByRole returns all users with the given role.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// UpdateName mutates the display name and bumps updated_at.
	UpdateName(ctx context.Context, userID, name string) error

	// UpdateRole assigns a role (the admin approval action).
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// SetVerification stores a new verification token fingerprint and expiry.
	SetVerification(ctx context.Context, userID, hash string, expiresAt time.Time) error

	// MarkVerified flips verified=1 and clears the token fields.
	MarkVerified(ctx context.Context, userID string) error

	// DeleteUser removes a user. Invitations cascade; rows in bids or
	// projects referencing the user make the delete fail (restricted).
	DeleteUser(ctx context.Context, userID string) error

	// HasAuthoredRecords reports whether the user is referenced by any
	// bid, or by any project as creator or opener.
	HasAuthoredRecords(ctx context.Context, userID string) (bool, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Projects interface {
	// CreateProject inserts a new project (status Active).
	CreateProject(ctx context.Context, p domain.Project) error

	// GetProjectByID returns a project by id.
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// ListProjects returns all projects ordered by creation date (newest first).
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// EndExpiredProjects flips every Active project whose closing time is
	// at or before now to Ended, returning how many rows changed. This is
	// the lazy read-time expiry sweep.
	EndExpiredProjects(ctx context.Context, now time.Time) (int64, error)

	// MarkEnded conditionally flips one Active project past its closing
	// time to Ended. Returns false when the guard did not match.
	MarkEnded(ctx context.Context, id string, now time.Time) (bool, error)

	// MarkOpened conditionally transitions Ended -> Opened, recording the
	// opener and opening time. The WHERE status='Ended' guard makes the
	// transition at-most-once under concurrent callers; the loser gets
	// false.
	MarkOpened(ctx context.Context, id, openerID string, at time.Time) (bool, error)

	// MarkCancelled conditionally transitions Active -> Cancelled, but
	// only while the project has zero bids. Returns false when the guard
	// did not match (wrong status or bids exist).
	MarkCancelled(ctx context.Context, id string) (bool, error)
}

type Invitations interface {
	// AddInvitation links a supplier to a project. Idempotent: inserting
	// an existing pair is a no-op.
	AddInvitation(ctx context.Context, projectID, supplierID string, at time.Time) error

	// ListInvitations returns a project's invitations in invitation order.
	ListInvitations(ctx context.Context, projectID string) ([]domain.Invitation, error)

	// IsInvited reports whether the supplier is in the project's invitation set.
	IsInvited(ctx context.Context, projectID, supplierID string) (bool, error)
}

type Bids interface {
	// AppendBid inserts a new bid row. Bids are append-only; there is no
	// update or delete.
	AppendBid(ctx context.Context, b domain.Bid) error

	// ListBidsByProject returns a project's full bid history ordered by
	// submission time (earliest first, then bid id).
	ListBidsByProject(ctx context.Context, projectID string) ([]domain.Bid, error)

	// ListBidsBySupplier returns one supplier's bid history for a project
	// in submission order.
	ListBidsBySupplier(ctx context.Context, projectID, supplierID string) ([]domain.Bid, error)

	// CountBidsByProject returns the number of bid rows for a project.
	CountBidsByProject(ctx context.Context, projectID string) (int, error)
}

type Categories interface {
	// ListCategories returns all business categories ordered by name.
	ListCategories(ctx context.Context) ([]domain.BusinessCategory, error)

	// GetCategoryByID returns a category by id.
	GetCategoryByID(ctx context.Context, id string) (domain.BusinessCategory, error)

	// CreateCategory inserts a new category. Duplicate names map to
	// ErrAlreadyExists.
	CreateCategory(ctx context.Context, c domain.BusinessCategory) error

	// UpdateCategory mutates name and description.
	UpdateCategory(ctx context.Context, c domain.BusinessCategory) error

	// DeleteCategory removes a category; supplier associations cascade.
	DeleteCategory(ctx context.Context, id string) error

	// SetUserCategories replaces a supplier's category associations.
	SetUserCategories(ctx context.Context, userID string, categoryIDs []string) error

	// ListUserCategories returns the category ids associated with a user.
	ListUserCategories(ctx context.Context, userID string) ([]string, error)
}
