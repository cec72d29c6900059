package models

import "github.com/shopspring/decimal"

// Account is a balance-holding entity owned by one user. Balance is computed by
// the backend from the account's transactions and is never adjusted locally.
type Account struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Name        string          `json:"name"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
}

// AccountInput is the payload for creating or updating an account.
type AccountInput struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Currency    string          `json:"currency" validate:"required,iso4217"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description" validate:"max=500"`
}
