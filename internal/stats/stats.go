// Package stats derives dashboard and report figures from loaded transactions.
// Every function is pure and recomputes from its inputs on each call.
package stats

import (
	"sort"
	"time"

	"budgetplanner/internal/models"

	"github.com/shopspring/decimal"
)

// UncategorizedName labels expenses whose category is not loaded.
const UncategorizedName = "Uncategorized"

// Totals is an income/expense pair and their difference.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func (t *Totals) add(tx models.Transaction) {
	switch tx.Type {
	case models.TransactionTypeIncome:
		t.Income = t.Income.Add(tx.Amount)
	case models.TransactionTypeExpense:
		t.Expense = t.Expense.Add(tx.Amount)
	}
	t.Net = t.Income.Sub(t.Expense)
}

// Balance is the sum of income amounts minus the sum of expense amounts.
func Balance(txs []models.Transaction) decimal.Decimal {
	return sum(txs, func(models.Transaction) bool { return true }).Net
}

// MonthlyStats totals the transactions dated in ref's calendar month and year,
// in ref's location.
func MonthlyStats(txs []models.Transaction, ref time.Time) Totals {
	y, m, _ := ref.Date()
	loc := ref.Location()
	return sum(txs, func(tx models.Transaction) bool {
		ty, tm, _ := tx.Date.In(loc).Date()
		return ty == y && tm == m
	})
}

func sum(txs []models.Transaction, keep func(models.Transaction) bool) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
	for _, tx := range txs {
		if keep(tx) {
			t.add(tx)
		}
	}
	return t
}

// CategorySlice is one wedge of the expense breakdown.
type CategorySlice struct {
	CategoryID int64           `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color,omitempty"`
	Total      decimal.Decimal `json:"total"`
}

// CategoryBreakdown groups expense transactions by category. Categories whose
// total is zero are left out. Slices are ordered by total, largest first; equal
// totals keep the order in which their category first appeared.
func CategoryBreakdown(txs []models.Transaction, categories []models.Category) []CategorySlice {
	meta := make(map[int64]models.Category, len(categories))
	for _, c := range categories {
		meta[c.ID] = c
	}

	index := make(map[int64]int)
	var out []CategorySlice
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		i, ok := index[tx.CategoryID]
		if !ok {
			slice := CategorySlice{CategoryID: tx.CategoryID, Name: UncategorizedName, Total: decimal.Zero}
			if c, found := meta[tx.CategoryID]; found {
				slice.Name, slice.Color = c.Name, c.Color
			}
			i = len(out)
			index[tx.CategoryID] = i
			out = append(out, slice)
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
	}

	kept := out[:0]
	for _, s := range out {
		if !s.Total.IsZero() {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Total.GreaterThan(kept[j].Total)
	})
	return kept
}

// TrendPoint is one calendar month of the income/expense line chart.
type TrendPoint struct {
	Month time.Time `json:"month"`
	Totals
}

// MonthlyTrend buckets transactions by calendar month in loc, oldest first.
// A nil loc means UTC. Pass the location of the MonthlyStats reference date so
// both views agree on month boundaries.
func MonthlyTrend(txs []models.Transaction, loc *time.Location) []TrendPoint {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make(map[time.Time]*TrendPoint)
	for _, tx := range txs {
		d := tx.Date.In(loc)
		month := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
		p, ok := buckets[month]
		if !ok {
			p = &TrendPoint{Month: month, Totals: Totals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}}
			buckets[month] = p
		}
		p.add(tx)
	}

	out := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// SortByDateDesc returns a copy of txs, most recent first. Transactions with
// the same date keep their original order.
func SortByDateDesc(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// ReportTotal sums a report's entries.
func ReportTotal(r models.Report) decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.Entries {
		total = total.Add(e.Amount)
	}
	return total
}
