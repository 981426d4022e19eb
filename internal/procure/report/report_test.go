package report

import (
	"testing"
	"time"

	"github.com/upvn/procure/internal/procure/domain"

	"github.com/stretchr/testify/require"
)

func TestRenderOpeningRecord(t *testing.T) {
	t.Parallel()

	closing := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opened := closing.Add(time.Hour)
	bidTime := closing.Add(-time.Minute)
	amount := domain.Amount(12000)

	rec := domain.OpeningRecord{
		ProjectID:   "01PROJECT",
		Title:       "Office refurbishment",
		Description: "Carpets and paint",
		Currency:    "USD",
		ClosingTime: closing,
		OpenerName:  "Olive Operator",
		OpenedAt:    &opened,
		Entries: []domain.OpeningEntry{
			{
				SupplierID:  "01ALICE",
				DisplayName: "Alice Ltd",
				HasBid:      true,
				BidTime:     &bidTime,
				Amount:      &amount,
				Attachments: []string{"quote.pdf"},
			},
			{
				SupplierID:  "01BOB",
				DisplayName: "Bob & Co",
				HasBid:      false,
			},
		},
	}

	doc, err := RenderOpeningRecord(rec)
	require.NoError(t, err)

	text := string(doc)
	require.Contains(t, text, "Office refurbishment")
	require.Contains(t, text, "Olive Operator")
	require.Contains(t, text, "120.00 USD")
	require.Contains(t, text, "Alice Ltd")
	require.Contains(t, text, "quote.pdf")
	require.Contains(t, text, "No bid submitted")

	t.Run("rendering is deterministic", func(t *testing.T) {
		again, err := RenderOpeningRecord(rec)
		require.NoError(t, err)
		require.Equal(t, doc, again)
	})
}
