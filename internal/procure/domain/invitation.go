package domain

import "time"

// Invitation links a Supplier to a Project. The pair is unique and
// append-only: re-inviting is a no-op, never an error.
type Invitation struct {
	ProjectID  string
	SupplierID string
	CreatedAt  time.Time
}
