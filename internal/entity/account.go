package entity

import "github.com/shopspring/decimal"

// Account represents a financial account. Its balance is never stored: it is
// OpeningBalance plus the signed sum of its transactions, computed on read.
type Account struct {
	Base
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Currency       string          `gorm:"size:3;not null" json:"currency"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"opening_balance"`
	Description    string          `gorm:"size:500" json:"description"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
