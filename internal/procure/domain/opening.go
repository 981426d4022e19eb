package domain

import "time"

// OpeningEntry is one supplier's line in an opening record. Suppliers who
// were invited but never bid appear with HasBid=false and nil price/time.
// DisplayName is the supplier's real name; login identifiers never appear
// in the audit record.
type OpeningEntry struct {
	SupplierID  string     `json:"supplierId"`
	DisplayName string     `json:"displayName"`
	HasBid      bool       `json:"hasBid"`
	BidTime     *time.Time `json:"bidTime"`
	Amount      *Amount    `json:"amount"`
	Attachments []string   `json:"attachments"`
}

// OpeningRecord is the canonical audit snapshot produced when a project's
// bids are opened. It is rebuilt purely from persisted bids, invitations
// and users, so repeated builds over unchanged data are identical -
// the record deliberately carries no generation timestamp.
type OpeningRecord struct {
	ProjectID   string         `json:"projectId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Currency    string         `json:"currency"`
	ClosingTime time.Time      `json:"closingTime"`
	OpenerName  string         `json:"openerName"`
	OpenedAt    *time.Time     `json:"openedAt"`
	Entries     []OpeningEntry `json:"entries"`
}
