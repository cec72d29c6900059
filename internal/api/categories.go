package api

import (
	"context"

	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
)

func (b *HTTPBackend) ListCategories(ctx context.Context) ([]models.Category, error) {
	var resp []CategoryDTO
	if err := b.doer.Get(ctx, b.endpoints.CategoriesAll, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, CategoryToModel), nil
}

func (b *HTTPBackend) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	var resp CategoryDTO
	if err := b.doer.Get(ctx, config.Path(b.endpoints.CategoryByID, byID(id)), &resp); err != nil {
		return models.Category{}, err
	}
	return CategoryToModel(resp), nil
}

func (b *HTTPBackend) CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	body := CategoryFromModel(models.Category{
		Name:        in.Name,
		Type:        in.Type,
		Color:       in.Color,
		Description: in.Description,
		Budget:      in.Budget,
	})
	var resp CategoryDTO
	if err := b.doer.Post(ctx, b.endpoints.CategoryCreate, body, &resp); err != nil {
		return models.Category{}, err
	}
	return CategoryToModel(resp), nil
}

func (b *HTTPBackend) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var resp CategoryDTO
	if err := b.doer.Put(ctx, b.endpoints.CategoryUpdate, CategoryFromModel(category), &resp); err != nil {
		return models.Category{}, err
	}
	return CategoryToModel(resp), nil
}

func (b *HTTPBackend) DeleteCategory(ctx context.Context, id int64) error {
	return b.doer.Delete(ctx, config.Path(b.endpoints.CategoryDelete, byID(id)))
}
