package api

import (
	"context"

	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
)

func (b *HTTPBackend) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	var resp []AccountDTO
	path := config.Path(b.endpoints.AccountsByUser, map[string]int64{"userId": userID})
	if err := b.doer.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, AccountToModel), nil
}

func (b *HTTPBackend) GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error) {
	var resp AccountDTO
	path := config.Path(b.endpoints.AccountByID, map[string]int64{"userId": userID, "accountId": accountID, "id": accountID})
	if err := b.doer.Get(ctx, path, &resp); err != nil {
		return models.Account{}, err
	}
	return AccountToModel(resp), nil
}

func (b *HTTPBackend) CreateAccount(ctx context.Context, userID int64, in models.AccountInput) (models.Account, error) {
	body := AccountFromModel(models.Account{
		UserID:      userID,
		Name:        in.Name,
		Currency:    in.Currency,
		Balance:     in.Balance,
		Description: in.Description,
	})
	var resp AccountDTO
	if err := b.doer.Post(ctx, b.endpoints.AccountCreate, body, &resp); err != nil {
		return models.Account{}, err
	}
	return AccountToModel(resp), nil
}

func (b *HTTPBackend) UpdateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	var resp AccountDTO
	if err := b.doer.Put(ctx, b.endpoints.AccountUpdate, AccountFromModel(account), &resp); err != nil {
		return models.Account{}, err
	}
	return AccountToModel(resp), nil
}

func (b *HTTPBackend) DeleteAccount(ctx context.Context, id int64) error {
	return b.doer.Delete(ctx, config.Path(b.endpoints.AccountDelete, byID(id)))
}
