package format

import (
	"strings"
	"testing"
	"time"

	"budgetplanner/internal/models"

	"github.com/shopspring/decimal"
)

func TestNumber(t *testing.T) {
	f := New("en-US")
	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "1,234.50"},
		{"0", "0.00"},
		{"4650", "4,650.00"},
		{"12.345", "12.35"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := f.Number(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("Number(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	f := New("en-US")

	t.Run("known currency", func(t *testing.T) {
		got := f.Amount(decimal.NewFromInt(1500), "USD")
		if !strings.HasPrefix(got, "$") || !strings.HasSuffix(got, "1,500.00") {
			t.Errorf("unexpected %q", got)
		}
	})

	t.Run("negative", func(t *testing.T) {
		got := f.Amount(decimal.NewFromInt(-250), "USD")
		if !strings.HasPrefix(got, "-") || !strings.HasSuffix(got, "250.00") {
			t.Errorf("unexpected %q", got)
		}
	})

	t.Run("unknown code is kept", func(t *testing.T) {
		if got := f.Amount(decimal.NewFromInt(5), "pts"); got != "PTS 5.00" {
			t.Errorf("unexpected %q", got)
		}
	})
}

func TestSigned(t *testing.T) {
	f := New("en")
	expense := models.Transaction{Amount: decimal.NewFromInt(10), Type: models.TransactionTypeExpense}
	income := models.Transaction{Amount: decimal.NewFromInt(10), Type: models.TransactionTypeIncome}
	if got := f.Signed(expense, "XPT"); !strings.HasPrefix(got, "-") {
		t.Errorf("expense should be negative, got %q", got)
	}
	if got := f.Signed(income, "XPT"); !strings.HasPrefix(got, "+") {
		t.Errorf("income should be positive, got %q", got)
	}
}

func TestLabels(t *testing.T) {
	f := New("not a tag")
	june := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	if got := f.Month(june); got != "June 2024" {
		t.Errorf("Month = %q", got)
	}
	if got := f.Date(june); got != "2024-06-15" {
		t.Errorf("Date = %q", got)
	}
	if got := f.Date(time.Time{}); got != "-" {
		t.Errorf("zero Date = %q", got)
	}
	if got := f.Type(models.TransactionTypeExpense); got != "Expense" {
		t.Errorf("Type = %q", got)
	}
	if got := f.Percent(0.25); got != "25%" {
		t.Errorf("Percent = %q", got)
	}
}
