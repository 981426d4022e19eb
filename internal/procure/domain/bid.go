package domain

import (
	"sort"
	"time"
)

// Bid is an append-only event. A supplier may submit any number of bids
// for a project while it is Active; the ledger never deletes or
// overwrites a row. The "current" bid is derived, not stored.
type Bid struct {
	ID          string
	ProjectID   string
	SupplierID  string
	Amount      Amount
	SubmittedAt time.Time
	Attachments []string
}

// CurrentBids selects each supplier's latest bid from full history.
// Ties on submission time fall back to the lexically greater bid ID
// (ULIDs are time-ordered) so the result is deterministic.
func CurrentBids(bids []Bid) map[string]Bid {
	current := make(map[string]Bid)
	for _, b := range bids {
		prev, ok := current[b.SupplierID]
		if !ok || b.SubmittedAt.After(prev.SubmittedAt) ||
			(b.SubmittedAt.Equal(prev.SubmittedAt) && b.ID > prev.ID) {
			current[b.SupplierID] = b
		}
	}
	return current
}

// FirstBidOrder returns the supplier IDs present in bids, ordered by each
// supplier's earliest submission (ties broken by supplier ID). This is
// the canonical bidder ordering for opening records.
func FirstBidOrder(bids []Bid) []string {
	first := make(map[string]time.Time)
	for _, b := range bids {
		t, ok := first[b.SupplierID]
		if !ok || b.SubmittedAt.Before(t) {
			first[b.SupplierID] = b.SubmittedAt
		}
	}

	order := make([]string, 0, len(first))
	for id := range first {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		ti, tj := first[order[i]], first[order[j]]
		if ti.Equal(tj) {
			return order[i] < order[j]
		}
		return ti.Before(tj)
	})
	return order
}
