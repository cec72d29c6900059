package api

import (
	"context"

	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
)

func (b *HTTPBackend) ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	var resp []TransactionDTO
	path := config.Path(b.endpoints.TransactionsByAccount, map[string]int64{"accountId": accountID})
	if err := b.doer.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, TransactionToModel), nil
}

func (b *HTTPBackend) ListTransactionsByCategory(ctx context.Context, accountID, categoryID int64) ([]models.Transaction, error) {
	var resp []TransactionDTO
	path := config.Path(b.endpoints.TransactionsByCategory, map[string]int64{"accountId": accountID, "categoryId": categoryID})
	if err := b.doer.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, TransactionToModel), nil
}

func (b *HTTPBackend) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	var resp TransactionDTO
	if err := b.doer.Get(ctx, config.Path(b.endpoints.TransactionByID, byID(id)), &resp); err != nil {
		return models.Transaction{}, err
	}
	return TransactionToModel(resp), nil
}

func (b *HTTPBackend) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	var resp TransactionDTO
	if err := b.doer.Post(ctx, b.endpoints.TransactionCreate, TransactionFromModel(t), &resp); err != nil {
		return models.Transaction{}, err
	}
	return TransactionToModel(resp), nil
}

func (b *HTTPBackend) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	var resp TransactionDTO
	if err := b.doer.Put(ctx, b.endpoints.TransactionUpdate, TransactionFromModel(t), &resp); err != nil {
		return models.Transaction{}, err
	}
	return TransactionToModel(resp), nil
}

func (b *HTTPBackend) DeleteTransaction(ctx context.Context, id int64) error {
	return b.doer.Delete(ctx, config.Path(b.endpoints.TransactionDelete, byID(id)))
}
