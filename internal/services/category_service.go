package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"budgetplanner/internal/entity"
	apperrors "budgetplanner/internal/errors"
)

// categoryService handles category-related business logic. Categories are
// shared by every user.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func validCategoryType(t entity.CategoryType) bool {
	return t == entity.CategoryTypeIncome || t == entity.CategoryTypeExpense
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(in CategoryInput) (*entity.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !validCategoryType(in.Type) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
	}

	var count int64
	if err := s.db.Model(&entity.Category{}).
		Where("name = ? AND type = ?", in.Name, in.Type).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	category := &entity.Category{
		Name:        in.Name,
		Type:        in.Type,
		Color:       in.Color,
		Description: in.Description,
		Budget:      in.Budget,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories lists every category ordered by ID.
func (s *categoryService) GetCategories() ([]entity.Category, error) {
	var categories []entity.Category
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(id int64) (*entity.Category, error) {
	var category entity.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory replaces a category's fields. The type cannot change while
// transactions use the category.
func (s *categoryService) UpdateCategory(id int64, in CategoryInput) (*entity.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !validCategoryType(in.Type) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
	}

	if in.Type != category.Type {
		used, err := s.inUse(id)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, apperrors.WithMessage(apperrors.ErrCategoryInUse, "category type cannot change while transactions use it")
		}
	}

	updates := map[string]interface{}{
		"name":        in.Name,
		"type":        in.Type,
		"color":       in.Color,
		"description": in.Description,
		"budget":      in.Budget,
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetCategoryByID(id)
}

// DeleteCategory deletes a category that no transaction uses.
func (s *categoryService) DeleteCategory(id int64) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}

	used, err := s.inUse(id)
	if err != nil {
		return err
	}
	if used {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *categoryService) inUse(id int64) (bool, error) {
	var count int64
	if err := s.db.Model(&entity.Transaction{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
