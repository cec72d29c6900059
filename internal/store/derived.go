package store

import (
	"time"

	"budgetplanner/internal/models"
	"budgetplanner/internal/stats"

	"github.com/shopspring/decimal"
)

// Balance of the loaded transactions: income minus expenses.
func (s *Store) Balance() decimal.Decimal {
	return stats.Balance(s.Snapshot().Transactions)
}

// MonthlyStats totals the loaded transactions of ref's month. A zero ref means
// the current month.
func (s *Store) MonthlyStats(ref time.Time) stats.Totals {
	if ref.IsZero() {
		ref = s.now()
	}
	return stats.MonthlyStats(s.Snapshot().Transactions, ref)
}

// CategoryBreakdown is the expense pie chart dataset.
func (s *Store) CategoryBreakdown() []stats.CategorySlice {
	snap := s.Snapshot()
	return stats.CategoryBreakdown(snap.Transactions, snap.Categories)
}

// MonthlyTrend is the income/expense line chart dataset, by calendar month in
// loc (nil means UTC).
func (s *Store) MonthlyTrend(loc *time.Location) []stats.TrendPoint {
	return stats.MonthlyTrend(s.Snapshot().Transactions, loc)
}

// SortedTransactions returns the loaded transactions, most recent first.
func (s *Store) SortedTransactions() []models.Transaction {
	return stats.SortByDateDesc(s.Snapshot().Transactions)
}
