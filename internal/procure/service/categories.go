package service

import (
	"context"
	"errors"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/idx"
)

var (
	ErrCategoryNotFound  = errors.New("business category not found")
	ErrCategoryNameTaken = errors.New("business category name already in use")
	ErrCategoryInvalid   = errors.New("business category name required")
)

// CategoryService manages the Admin-maintained business category
// taxonomy.
type CategoryService struct {
	Store store.Store
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.BusinessCategory, error) {
	return s.Store.Categories().ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (domain.BusinessCategory, error) {
	c, err := s.Store.Categories().GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.BusinessCategory{}, ErrCategoryNotFound
		}
		return domain.BusinessCategory{}, err
	}
	return c, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (domain.BusinessCategory, error) {
	if name == "" {
		return domain.BusinessCategory{}, ErrCategoryInvalid
	}

	now := time.Now().UTC()
	c := domain.BusinessCategory{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Categories().CreateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.BusinessCategory{}, ErrCategoryNameTaken
		}
		return domain.BusinessCategory{}, err
	}
	return c, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id, name, description string) error {
	if name == "" {
		return ErrCategoryInvalid
	}
	err := s.Store.Categories().UpdateCategory(ctx, domain.BusinessCategory{
		ID:          id,
		Name:        name,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrCategoryNameTaken
	}
	return err
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Store.Categories().DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
