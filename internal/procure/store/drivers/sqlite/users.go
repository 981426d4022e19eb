package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
)

type usersRepo struct {
	q dbtx
}

var _ store.Users = (*usersRepo)(nil)

const userColumns = `id, username, name, password_hash, role, verified,
	verification_hash, verification_expires_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u          domain.User
		role       string
		verified   int64
		verifHash  sql.NullString
		verifExp   sql.NullInt64
		createdAt  int64
		updatedAt  int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &role, &verified,
		&verifHash, &verifExp, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.Role(role)
	u.Verified = verified != 0
	if verifHash.Valid {
		u.VerificationHash = &verifHash.String
	}
	if verifExp.Valid {
		t := fromMillis(verifExp.Int64)
		u.VerificationExpiresAt = &t
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByVerificationHash(ctx context.Context, hash string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE verification_hash = ?`, hash)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	var (
		verifHash sql.NullString
		verifExp  sql.NullInt64
	)
	if u.VerificationHash != nil {
		verifHash = sql.NullString{String: *u.VerificationHash, Valid: true}
	}
	if u.VerificationExpiresAt != nil {
		verifExp = sql.NullInt64{Int64: toMillis(*u.VerificationExpiresAt), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, name, password_hash, role, verified,
			verification_hash, verification_expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Name, u.PasswordHash, string(u.Role), boolToInt(u.Verified),
		verifHash, verifExp, toMillis(u.CreatedAt), toMillis(u.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert user: %w", mapConstraint(err))
	}
	return nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *usersRepo) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY created_at ASC, id ASC`,
		string(role))
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdateName(ctx context.Context, userID, name string) error {
	return r.updateOne(ctx,
		`UPDATE users SET name = ?, updated_at = ? WHERE id = ?`,
		name, toMillis(time.Now()), userID)
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	return r.updateOne(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), toMillis(time.Now()), userID)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.updateOne(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, toMillis(time.Now()), userID)
}

func (r *usersRepo) SetVerification(ctx context.Context, userID, hash string, expiresAt time.Time) error {
	return r.updateOne(ctx, `
		UPDATE users SET verified = 0, verification_hash = ?,
			verification_expires_at = ?, updated_at = ?
		WHERE id = ?`,
		hash, toMillis(expiresAt), toMillis(time.Now()), userID)
}

func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	return r.updateOne(ctx, `
		UPDATE users SET verified = 1, verification_hash = NULL,
			verification_expires_at = NULL, updated_at = ?
		WHERE id = ?`,
		toMillis(time.Now()), userID)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) HasAuthoredRecords(ctx context.Context, userID string) (bool, error) {
	var exists int64
	err := r.q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bids WHERE supplier_id = ?
			UNION ALL
			SELECT 1 FROM projects WHERE created_by = ? OR opened_by = ?
		)`, userID, userID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check authored records: %w", err)
	}
	return exists != 0, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count == 0, nil
}

// updateOne runs an UPDATE that must touch exactly one row, mapping a
// zero-row result to ErrNotFound.
func (r *usersRepo) updateOne(ctx context.Context, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", mapConstraint(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
