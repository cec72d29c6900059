package store

import (
	"context"

	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"
	"budgetplanner/internal/validator"
)

// FetchCategories replaces the category collection.
func (s *Store) FetchCategories(ctx context.Context) Result[[]models.Category] {
	return s.loadCategories(ctx, s.currentGeneration())
}

func (s *Store) loadCategories(ctx context.Context, gen uint64) Result[[]models.Category] {
	categories, err := s.backend.ListCategories(ctx)
	if err != nil {
		return fail[[]models.Category](s, gen, "fetch categories", err)
	}
	s.commit(gen, func(st *State) { st.Categories = copyCategories(categories) })
	return succeed(categories)
}

// AddCategory creates a category and re-reads the category collection.
func (s *Store) AddCategory(ctx context.Context, in models.CategoryInput) Result[models.Category] {
	gen := s.currentGeneration()
	if fields := validator.Fields(in); fields != nil {
		return fail[models.Category](s, gen, "add category", invalid(fields))
	}

	created, err := s.backend.CreateCategory(ctx, in)
	if err != nil {
		return fail[models.Category](s, gen, "add category", err)
	}

	refetch := s.loadCategories(ctx, gen)
	return succeed(pickCategory(refetch.Value, created))
}

// UpdateCategory replaces a loaded category's fields.
func (s *Store) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) Result[models.Category] {
	gen := s.currentGeneration()
	if _, ok := findCategory(s.Snapshot().Categories, id); !ok {
		return fail[models.Category](s, gen, "update category", apperrors.ErrCategoryNotFound)
	}
	if fields := validator.Fields(in); fields != nil {
		return fail[models.Category](s, gen, "update category", invalid(fields))
	}

	updated := models.Category{
		ID:          id,
		Name:        in.Name,
		Type:        in.Type,
		Color:       in.Color,
		Description: in.Description,
		Budget:      in.Budget,
	}
	if _, err := s.backend.UpdateCategory(ctx, updated); err != nil {
		return fail[models.Category](s, gen, "update category", err)
	}

	refetch := s.loadCategories(ctx, gen)
	return succeed(pickCategory(refetch.Value, updated))
}

// DeleteCategory removes a loaded category.
func (s *Store) DeleteCategory(ctx context.Context, id int64) Result[struct{}] {
	gen := s.currentGeneration()
	if _, ok := findCategory(s.Snapshot().Categories, id); !ok {
		return fail[struct{}](s, gen, "delete category", apperrors.ErrCategoryNotFound)
	}

	if err := s.backend.DeleteCategory(ctx, id); err != nil {
		return fail[struct{}](s, gen, "delete category", err)
	}

	s.loadCategories(ctx, gen)
	return succeed(struct{}{})
}

func pickCategory(categories []models.Category, written models.Category) models.Category {
	if c, ok := findCategory(categories, written.ID); ok && written.ID != 0 {
		return c
	}
	return written
}
