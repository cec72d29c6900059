package handlers

import (
	"github.com/shopspring/decimal"

	"budgetplanner/internal/api"
	"budgetplanner/internal/entity"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/services"
)

// The handlers speak the same wire shapes as the budget client (package api),
// so the development backend can stand in for the reference one.

func userDTO(u *entity.User) api.UserDTO {
	return api.UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Login:        u.Login,
		Age:          u.Age,
		UserRoleID:   u.RoleID,
		CreationDate: api.FormatDate(u.CreatedAt),
	}
}

func userInput(d api.UserWriteDTO) services.UserInput {
	return services.UserInput{
		Name:     d.Name,
		Surname:  d.Surname,
		Login:    d.Login,
		Password: d.Password,
		Age:      d.Age,
	}
}

func accountDTO(a *services.AccountBalance) api.AccountDTO {
	return api.AccountDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		Currency:    a.Currency,
		Ammount:     a.Balance.InexactFloat64(),
		Description: a.Description,
	}
}

// accountInput reads Ammount as the opening balance; updates ignore it.
func accountInput(d api.AccountDTO) services.AccountInput {
	return services.AccountInput{
		Name:           d.Name,
		Currency:       d.Currency,
		Description:    d.Description,
		OpeningBalance: decimal.NewFromFloat(d.Ammount),
	}
}

func categoryDTO(c *entity.Category) api.CategoryDTO {
	d := api.CategoryDTO{
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

func categoryInput(d api.CategoryDTO) services.CategoryInput {
	in := services.CategoryInput{
		Name:        d.CategoryName,
		Type:        entity.CategoryType(d.Type),
		Color:       d.Color,
		Description: d.Description,
	}
	if d.Budget != nil {
		b := decimal.NewFromFloat(*d.Budget)
		in.Budget = &b
	}
	return in
}

func transactionDTO(t *entity.Transaction) api.TransactionDTO {
	return api.TransactionDTO{
		ID:          t.ID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount.InexactFloat64(),
		Type:        string(t.Type),
		Date:        api.FormatDate(t.Date),
		Description: t.Description,
		Notes:       t.Notes,
	}
}

func transactionInput(d api.TransactionDTO) (services.TransactionInput, error) {
	date, err := api.ParseDate(d.Date)
	if err != nil {
		return services.TransactionInput{}, apperrors.WithFields(apperrors.ErrValidation,
			map[string]string{"date": "must be a date like 2024-06-01"})
	}
	return services.TransactionInput{
		AccountID:   d.AccountID,
		CategoryID:  d.CategoryID,
		Type:        entity.CategoryType(d.Type),
		Amount:      decimal.NewFromFloat(d.Amount),
		Date:        date,
		Description: d.Description,
		Notes:       d.Notes,
	}, nil
}

func reportEntryDTO(line services.CategoryTotal) api.ReportEntryDTO {
	return api.ReportEntryDTO{
		CategoryID:   line.CategoryID,
		CategoryName: line.CategoryName,
		TotalAmount:  line.Total.InexactFloat64(),
	}
}

func mapAll[E, D any](in []E, fn func(*E) D) []D {
	out := make([]D, len(in))
	for i := range in {
		out[i] = fn(&in[i])
	}
	return out
}
