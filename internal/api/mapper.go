package api

import (
	"strings"
	"time"

	"budgetplanner/internal/models"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when reading backend dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate reads a backend date. Dates without a zone are taken as UTC.
// An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// FormatDate writes a date the way the backend expects it.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseDateLoose is ParseDate for fields whose corruption should not fail a
// whole listing.
func parseDateLoose(s string) time.Time {
	t, _ := ParseDate(s)
	return t
}

// UserToModel converts a UserDTO.
func UserToModel(d UserDTO) models.User {
	return models.User{
		ID:        d.ID,
		Name:      d.Name,
		Surname:   d.Surname,
		Login:     d.Login,
		Age:       d.Age,
		RoleID:    d.UserRoleID,
		CreatedAt: parseDateLoose(d.CreationDate),
	}
}

// UserFromModel converts a user to its DTO.
func UserFromModel(u models.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Login:        u.Login,
		Age:          u.Age,
		UserRoleID:   u.RoleID,
		CreationDate: FormatDate(u.CreatedAt),
	}
}

// LoginToModel flattens either login reply shape.
func LoginToModel(d LoginResponseDTO) models.LoginResult {
	if d.User != nil {
		return models.LoginResult{Token: d.Token, User: UserToModel(*d.User)}
	}
	return models.LoginResult{
		Token: d.Token,
		User: UserToModel(UserDTO{
			ID:           d.ID,
			Name:         d.Name,
			Surname:      d.Surname,
			Login:        d.Login,
			UserRoleID:   d.UserRoleID,
			CreationDate: d.CreationDate,
		}),
	}
}

// AccountToModel converts an AccountDTO.
func AccountToModel(d AccountDTO) models.Account {
	return models.Account{
		ID:          d.ID,
		UserID:      d.UserID,
		Name:        d.Name,
		Currency:    d.Currency,
		Balance:     decimal.NewFromFloat(d.Ammount),
		Description: d.Description,
	}
}

// AccountFromModel converts an account to its DTO.
func AccountFromModel(a models.Account) AccountDTO {
	return AccountDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		Currency:    a.Currency,
		Ammount:     a.Balance.InexactFloat64(),
		Description: a.Description,
	}
}

// CategoryToModel converts a CategoryDTO. Type is lowercased.
func CategoryToModel(d CategoryDTO) models.Category {
	c := models.Category{
		ID:          d.ID,
		Name:        d.CategoryName,
		Type:        models.TransactionType(strings.ToLower(d.Type)),
		Color:       d.Color,
		Description: d.Description,
	}
	if d.Budget != nil {
		b := decimal.NewFromFloat(*d.Budget)
		c.Budget = &b
	}
	return c
}

// CategoryFromModel converts a category to its DTO.
func CategoryFromModel(c models.Category) CategoryDTO {
	d := CategoryDTO{
		ID:           c.ID,
		CategoryName: c.Name,
		Type:         string(c.Type),
		Color:        c.Color,
		Description:  c.Description,
	}
	if c.Budget != nil {
		b := c.Budget.InexactFloat64()
		d.Budget = &b
	}
	return d
}

// TransactionToModel converts a TransactionDTO. A negative Amount from a
// signed-amount backend is folded into Type.
func TransactionToModel(d TransactionDTO) models.Transaction {
	amount := decimal.NewFromFloat(d.Amount)
	typ := models.TransactionType(strings.ToLower(d.Type))
	if amount.IsNegative() {
		amount = amount.Neg()
		if typ == "" {
			typ = models.TransactionTypeExpense
		}
	}
	if typ == "" {
		typ = models.TransactionTypeIncome
	}
	return models.Transaction{
		ID:          d.ID,
		AccountID:   d.AccountID,
		CategoryID:  d.CategoryID,
		Amount:      amount,
		Type:        typ,
		Date:        parseDateLoose(d.Date),
		Description: d.Description,
		Notes:       d.Notes,
	}
}

// TransactionFromModel converts a transaction to its DTO.
func TransactionFromModel(t models.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          t.ID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount.InexactFloat64(),
		Type:        string(t.Type),
		Date:        FormatDate(t.Date),
		Description: t.Description,
		Notes:       t.Notes,
	}
}

// ReportEntryToModel converts a ReportEntryDTO.
func ReportEntryToModel(d ReportEntryDTO) models.ReportEntry {
	return models.ReportEntry{
		CategoryID:   d.CategoryID,
		CategoryName: d.CategoryName,
		Amount:       decimal.NewFromFloat(d.TotalAmount),
	}
}

// ReportEntryFromModel converts a report entry to its DTO.
func ReportEntryFromModel(e models.ReportEntry) ReportEntryDTO {
	return ReportEntryDTO{
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		TotalAmount:  e.Amount.InexactFloat64(),
	}
}

func mapSlice[D, M any](in []D, fn func(D) M) []M {
	out := make([]M, 0, len(in))
	for _, d := range in {
		out = append(out, fn(d))
	}
	return out
}
