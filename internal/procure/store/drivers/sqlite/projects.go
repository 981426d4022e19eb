package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
)

type projectsRepo struct {
	q dbtx
}

var _ store.Projects = (*projectsRepo)(nil)

const projectColumns = `id, title, description, status, created_by, created_at,
	closing_time, currency, attachments, requires_auditor_opening, opened_by, opened_at`

func scanProject(row rowScanner) (domain.Project, error) {
	var (
		p           domain.Project
		status      string
		createdAt   int64
		closingTime int64
		attachments string
		auditor     int64
		openedBy    sql.NullString
		openedAt    sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &status, &p.CreatedBy, &createdAt,
		&closingTime, &p.Currency, &attachments, &auditor, &openedBy, &openedAt)
	if err != nil {
		return domain.Project{}, err
	}

	p.Status = domain.ProjectStatus(status)
	p.CreatedAt = fromMillis(createdAt)
	p.ClosingTime = fromMillis(closingTime)
	p.RequiresAuditorOpening = auditor != 0
	if p.Attachments, err = decodeStrings(attachments); err != nil {
		return domain.Project{}, err
	}
	if openedBy.Valid {
		p.OpenedBy = &openedBy.String
	}
	if openedAt.Valid {
		t := fromMillis(openedAt.Int64)
		p.OpenedAt = &t
	}
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	attachments, err := encodeStrings(p.Attachments)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, status, created_by, created_at,
			closing_time, currency, attachments, requires_auditor_opening)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, string(p.Status), p.CreatedBy, toMillis(p.CreatedAt),
		toMillis(p.ClosingTime), p.Currency, attachments, boolToInt(p.RequiresAuditorOpening))
	if err != nil {
		return fmt.Errorf("insert project: %w", mapConstraint(err))
	}
	return nil
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// EndExpiredProjects is the lazy sweep: one conditional UPDATE flips
// every overdue Active project to Ended. The status+closing_time guard
// makes it safe to run on every read.
func (r *projectsRepo) EndExpiredProjects(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE projects SET status = 'Ended'
		WHERE status = 'Active' AND closing_time <= ?`,
		toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("end expired projects: %w", err)
	}
	return res.RowsAffected()
}

func (r *projectsRepo) MarkEnded(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE projects SET status = 'Ended'
		WHERE id = ? AND status = 'Active' AND closing_time <= ?`,
		id, toMillis(now))
	if err != nil {
		return false, fmt.Errorf("mark project ended: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkOpened relies on the WHERE status='Ended' guard for the
// at-most-once opening: concurrent openers race on one conditional
// write and exactly one sees an affected row.
func (r *projectsRepo) MarkOpened(ctx context.Context, id, openerID string, at time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE projects SET status = 'Opened', opened_by = ?, opened_at = ?
		WHERE id = ? AND status = 'Ended'`,
		openerID, toMillis(at), id)
	if err != nil {
		return false, fmt.Errorf("mark project opened: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkCancelled checks the zero-bids guard inside the UPDATE itself so
// a bid landing between a read and the write cannot slip through.
func (r *projectsRepo) MarkCancelled(ctx context.Context, id string) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE projects SET status = 'Cancelled'
		WHERE id = ? AND status = 'Active'
			AND NOT EXISTS (SELECT 1 FROM bids WHERE bids.project_id = projects.id)`,
		id)
	if err != nil {
		return false, fmt.Errorf("mark project cancelled: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
