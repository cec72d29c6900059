package entity

import "github.com/shopspring/decimal"

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. Categories are global.
type Category struct {
	Base
	Name        string           `gorm:"size:100;not null" json:"name"`
	Type        CategoryType     `gorm:"size:10;not null" json:"type"`
	Color       string           `gorm:"size:7" json:"color"`
	Description string           `gorm:"size:500" json:"description"`
	Budget      *decimal.Decimal `gorm:"type:numeric(19,4)" json:"budget,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
