package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
)

type invitationsRepo struct {
	q dbtx
}

var _ store.Invitations = (*invitationsRepo)(nil)

// AddInvitation is idempotent: the composite primary key plus
// INSERT OR IGNORE make re-inviting a no-op.
func (r *invitationsRepo) AddInvitation(ctx context.Context, projectID, supplierID string, at time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT OR IGNORE INTO project_invitations (project_id, supplier_id, created_at)
		VALUES (?, ?, ?)`,
		projectID, supplierID, toMillis(at))
	if err != nil {
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, projectID string) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT project_id, supplier_id, created_at FROM project_invitations
		WHERE project_id = ?
		ORDER BY created_at ASC, supplier_id ASC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		var (
			inv       domain.Invitation
			createdAt int64
		)
		if err := rows.Scan(&inv.ProjectID, &inv.SupplierID, &createdAt); err != nil {
			return nil, err
		}
		inv.CreatedAt = fromMillis(createdAt)
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *invitationsRepo) IsInvited(ctx context.Context, projectID, supplierID string) (bool, error) {
	var exists int64
	err := r.q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM project_invitations WHERE project_id = ? AND supplier_id = ?
		)`, projectID, supplierID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check invitation: %w", err)
	}
	return exists != 0, nil
}
