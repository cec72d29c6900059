package services

import (
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetplanner/internal/entity"
	apperrors "budgetplanner/internal/errors"
)

// reportService aggregates transactions per category.
type reportService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer) ReportServicer {
	return &reportService{db: db, accountService: accountService, categoryService: categoryService}
}

// CategoryTotals sums an account's transaction amounts per category, ordered
// by category ID. With categoryID set only that category is reported, as a
// zero line when it has no transactions.
func (s *reportService) CategoryTotals(userID, accountID int64, categoryID *int64) ([]CategoryTotal, error) {
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}
	var only *entity.Category
	if categoryID != nil {
		category, err := s.categoryService.GetCategoryByID(*categoryID)
		if err != nil {
			return nil, err
		}
		only = category
	}

	q := s.db.Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("account_id = ?", accountID)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var txs []entity.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byCategory := make(map[int64]*CategoryTotal)
	for _, t := range txs {
		line, ok := byCategory[t.CategoryID]
		if !ok {
			line = &CategoryTotal{CategoryID: t.CategoryID, CategoryName: t.Category.Name, Total: decimal.Zero}
			byCategory[t.CategoryID] = line
		}
		line.Total = line.Total.Add(t.Amount)
	}

	if only != nil && len(byCategory) == 0 {
		return []CategoryTotal{{CategoryID: only.ID, CategoryName: only.Name, Total: decimal.Zero}}, nil
	}

	out := make([]CategoryTotal, 0, len(byCategory))
	for _, line := range byCategory {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}
