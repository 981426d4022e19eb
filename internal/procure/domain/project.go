package domain

import "time"

// ProjectStatus is the lifecycle state of a bidding project. Transitions
// are monotonic: Active -> Ended -> Opened, with a side branch
// Active -> Cancelled. Opened and Cancelled are absorbing.
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "Active"
	StatusEnded     ProjectStatus = "Ended"
	StatusOpened    ProjectStatus = "Opened"
	StatusCancelled ProjectStatus = "Cancelled"
)

// Terminal reports whether no further transition may leave s.
func (s ProjectStatus) Terminal() bool {
	return s == StatusOpened || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is permitted by
// the lifecycle state machine. It encodes monotonicity only; callers
// enforce the role and time guards.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	switch s {
	case StatusActive:
		return next == StatusEnded || next == StatusCancelled
	case StatusEnded:
		return next == StatusOpened
	default:
		return false
	}
}

type Project struct {
	ID          string
	Title       string
	Description string
	Status      ProjectStatus
	CreatedBy   string // user ID of the owning Operator or Admin
	CreatedAt   time.Time
	ClosingTime time.Time // bid submission deadline
	Currency    string    // ISO 4217 code shared by all bids on this project
	Attachments []string  // opaque attachment references

	// RequiresAuditorOpening is fixed at creation: when true only an
	// Auditor or Admin may open the bids, otherwise the creator does.
	RequiresAuditorOpening bool

	// Set if and only if Status == StatusOpened.
	OpenedBy *string
	OpenedAt *time.Time
}

// Expired reports whether the project is still marked Active past its
// closing time, i.e. the lazy sweep owes it an Active -> Ended flip.
func (p Project) Expired(now time.Time) bool {
	return p.Status == StatusActive && !now.Before(p.ClosingTime)
}
