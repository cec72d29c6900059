package models

import "github.com/shopspring/decimal"

// Category labels a transaction as income or expense.
type Category struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Type        TransactionType  `json:"type"`
	Color       string           `json:"color,omitempty"`
	Description string           `json:"description,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name        string           `json:"name" validate:"required,min=1,max=100"`
	Type        TransactionType  `json:"type" validate:"required,category_type"`
	Color       string           `json:"color" validate:"omitempty,hex_color"`
	Description string           `json:"description" validate:"max=500"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}
