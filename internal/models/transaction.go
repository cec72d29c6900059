package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether money came in or went out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a dated movement of money against one account and one category.
// Amount is always non-negative; Type carries the direction.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"accountId"`
	CategoryID  int64           `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
}

// Signed returns the amount with its direction applied.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionInput is the payload for creating or updating a transaction.
// A zero AccountID means the currently selected account; a zero Date means now.
type TransactionInput struct {
	AccountID   int64           `json:"accountId"`
	CategoryID  int64           `json:"categoryId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Type        TransactionType `json:"type" validate:"required,category_type"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description" validate:"required,max=255"`
	Notes       string          `json:"notes" validate:"max=1000"`
}
