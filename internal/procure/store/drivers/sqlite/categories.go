package sqlite

import (
	"context"
	"fmt"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
)

type categoriesRepo struct {
	q dbtx
}

var _ store.Categories = (*categoriesRepo)(nil)

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row rowScanner) (domain.BusinessCategory, error) {
	var (
		c         domain.BusinessCategory
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &createdAt, &updatedAt); err != nil {
		return domain.BusinessCategory{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.BusinessCategory, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM business_categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.BusinessCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id string) (domain.BusinessCategory, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM business_categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err != nil {
		return domain.BusinessCategory{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.BusinessCategory) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO business_categories (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, toMillis(c.CreatedAt), toMillis(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert category: %w", mapConstraint(err))
	}
	return nil
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, c domain.BusinessCategory) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE business_categories SET name = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Description, toMillis(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", mapConstraint(err))
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

func (r *categoriesRepo) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM business_categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
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

// SetUserCategories replaces the association set wholesale. Callers that
// need atomicity run it through WithTx.
func (r *categoriesRepo) SetUserCategories(ctx context.Context, userID string, categoryIDs []string) error {
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM user_categories WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear user categories: %w", err)
	}
	for _, categoryID := range categoryIDs {
		_, err := r.q.ExecContext(ctx, `
			INSERT OR IGNORE INTO user_categories (user_id, category_id)
			VALUES (?, ?)`, userID, categoryID)
		if err != nil {
			return fmt.Errorf("insert user category: %w", err)
		}
	}
	return nil
}

func (r *categoriesRepo) ListUserCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT uc.category_id FROM user_categories uc
		JOIN business_categories bc ON bc.id = uc.category_id
		WHERE uc.user_id = ?
		ORDER BY bc.name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list user categories: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
