// Package format renders amounts, dates and labels for people.
package format

import (
	"strings"
	"time"

	"budgetplanner/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats for one language.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	title   cases.Caser
}

// New returns a Formatter for a BCP 47 tag such as "en-US" or "pl". Unknown
// tags fall back to English.
func New(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		title:   cases.Title(tag),
	}
}

// Number prints an amount with two decimals and locale digit grouping.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// Amount prints an amount with the currency symbol, e.g. "$ 1,234.50" or
// "-zł 12.00". Codes that are not ISO 4217 are printed as given.
func (f *Formatter) Amount(d decimal.Decimal, code string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	symbol := strings.ToUpper(code)
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = f.printer.Sprint(currency.Symbol(unit))
	}
	if symbol == "" {
		return sign + f.Number(d)
	}
	return sign + symbol + " " + f.Number(d)
}

// Signed prints a transaction amount with "+" for income and "-" for expense.
func (f *Formatter) Signed(t models.Transaction, code string) string {
	if t.Type == models.TransactionTypeExpense {
		return f.Amount(t.Amount.Neg(), code)
	}
	return "+" + f.Amount(t.Amount, code)
}

// Percent prints a share in [0, 1] as a whole percentage.
func (f *Formatter) Percent(share float64) string {
	return f.printer.Sprint(number.Percent(share, number.MaxFractionDigits(1)))
}

// Month labels a calendar month, e.g. "June 2024".
func (f *Formatter) Month(t time.Time) string {
	return t.Format("January 2006")
}

// Date prints a transaction date.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// Type labels a transaction type, e.g. "Expense".
func (f *Formatter) Type(t models.TransactionType) string {
	return f.title.String(string(t))
}
