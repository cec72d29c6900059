package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction. Amount is always positive;
// Type carries the direction.
type Transaction struct {
	Base
	AccountID   int64           `gorm:"not null;index" json:"account_id"`
	CategoryID  int64           `gorm:"not null;index" json:"category_id"`
	Type        CategoryType    `gorm:"size:10;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Notes       string          `gorm:"size:1000" json:"notes"`

	// Relationships
	Account  Account  `gorm:"foreignKey:AccountID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// Signed returns the amount with income positive and expense negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == CategoryTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
