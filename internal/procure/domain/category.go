package domain

import "time"

// BusinessCategory is an Admin-managed taxonomy entry that suppliers are
// associated with (many-to-many). Names are unique.
type BusinessCategory struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
