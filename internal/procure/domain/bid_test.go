package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentBids(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("latest bid wins per supplier", func(t *testing.T) {
		bids := []Bid{
			{ID: "01A", SupplierID: "s1", Amount: 10000, SubmittedAt: base},
			{ID: "01B", SupplierID: "s1", Amount: 8000, SubmittedAt: base.Add(time.Minute)},
			{ID: "01C", SupplierID: "s1", Amount: 12000, SubmittedAt: base.Add(2 * time.Minute)},
		}

		current := CurrentBids(bids)
		require.Len(t, current, 1)
		require.Equal(t, Amount(12000), current["s1"].Amount)
		require.Equal(t, "01C", current["s1"].ID)
	})

	t.Run("independent per supplier", func(t *testing.T) {
		bids := []Bid{
			{ID: "01A", SupplierID: "s1", Amount: 50000, SubmittedAt: base},
			{ID: "01B", SupplierID: "s2", Amount: 40000, SubmittedAt: base.Add(time.Minute)},
			{ID: "01C", SupplierID: "s1", Amount: 45000, SubmittedAt: base.Add(2 * time.Minute)},
		}

		current := CurrentBids(bids)
		require.Len(t, current, 2)
		require.Equal(t, Amount(45000), current["s1"].Amount)
		require.Equal(t, Amount(40000), current["s2"].Amount)
	})

	t.Run("equal timestamps fall back to bid id", func(t *testing.T) {
		bids := []Bid{
			{ID: "01B", SupplierID: "s1", Amount: 2000, SubmittedAt: base},
			{ID: "01A", SupplierID: "s1", Amount: 1000, SubmittedAt: base},
		}

		current := CurrentBids(bids)
		require.Equal(t, "01B", current["s1"].ID)
	})

	t.Run("empty history yields empty map", func(t *testing.T) {
		require.Empty(t, CurrentBids(nil))
	})
}

func TestFirstBidOrder(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("orders by earliest submission", func(t *testing.T) {
		bids := []Bid{
			{ID: "01A", SupplierID: "s2", SubmittedAt: base},
			{ID: "01B", SupplierID: "s1", SubmittedAt: base.Add(time.Minute)},
			// s2 bids again later; only the first bid counts for ordering
			{ID: "01C", SupplierID: "s2", SubmittedAt: base.Add(5 * time.Minute)},
			{ID: "01D", SupplierID: "s3", SubmittedAt: base.Add(2 * time.Minute)},
		}

		require.Equal(t, []string{"s2", "s1", "s3"}, FirstBidOrder(bids))
	})

	t.Run("ties break on supplier id", func(t *testing.T) {
		bids := []Bid{
			{ID: "01A", SupplierID: "s9", SubmittedAt: base},
			{ID: "01B", SupplierID: "s1", SubmittedAt: base},
		}

		require.Equal(t, []string{"s1", "s9"}, FirstBidOrder(bids))
	})

	t.Run("empty history yields no order", func(t *testing.T) {
		require.Empty(t, FirstBidOrder(nil))
	})
}
