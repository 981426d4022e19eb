package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
)

type bidsRepo struct {
	q dbtx
}

var _ store.Bids = (*bidsRepo)(nil)

const bidColumns = `id, project_id, supplier_id, amount, submitted_at, attachments`

func scanBid(row rowScanner) (domain.Bid, error) {
	var (
		b           domain.Bid
		amount      int64
		submittedAt int64
		attachments string
	)
	err := row.Scan(&b.ID, &b.ProjectID, &b.SupplierID, &amount, &submittedAt, &attachments)
	if err != nil {
		return domain.Bid{}, err
	}

	b.Amount = domain.Amount(amount)
	b.SubmittedAt = fromMillis(submittedAt)
	if b.Attachments, err = decodeStrings(attachments); err != nil {
		return domain.Bid{}, err
	}
	return b, nil
}

// AppendBid only ever inserts. The ledger has no update or delete path.
func (r *bidsRepo) AppendBid(ctx context.Context, b domain.Bid) error {
	attachments, err := encodeStrings(b.Attachments)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO bids (id, project_id, supplier_id, amount, submitted_at, attachments)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.ProjectID, b.SupplierID, int64(b.Amount), toMillis(b.SubmittedAt), attachments)
	if err != nil {
		return fmt.Errorf("insert bid: %w", mapConstraint(err))
	}
	return nil
}

func (r *bidsRepo) ListBidsByProject(ctx context.Context, projectID string) ([]domain.Bid, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+bidColumns+` FROM bids
		WHERE project_id = ?
		ORDER BY submitted_at ASC, id ASC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer rows.Close()
	return collectBids(rows)
}

func (r *bidsRepo) ListBidsBySupplier(ctx context.Context, projectID, supplierID string) ([]domain.Bid, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+bidColumns+` FROM bids
		WHERE project_id = ? AND supplier_id = ?
		ORDER BY submitted_at ASC, id ASC`,
		projectID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list supplier bids: %w", err)
	}
	defer rows.Close()
	return collectBids(rows)
}

func (r *bidsRepo) CountBidsByProject(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bids WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return count, nil
}

func collectBids(rows *sql.Rows) ([]domain.Bid, error) {
	var bids []domain.Bid
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}
