package models

import "github.com/shopspring/decimal"

// ReportEntry is one category's aggregated amount within a report.
type ReportEntry struct {
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// Report is a backend-computed aggregation of an account's transactions by category.
// CategoryID is zero for an all-category report.
type Report struct {
	AccountID  int64         `json:"accountId"`
	CategoryID int64         `json:"categoryId,omitempty"`
	Entries    []ReportEntry `json:"entries"`
}
