package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"budgetplanner/internal/entity"
	apperrors "budgetplanner/internal/errors"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		accountService:  accountService,
		categoryService: categoryService,
	}
}

// validate checks the input against the user's accounts and the categories.
func (s *transactionService) validate(userID int64, in *TransactionInput) error {
	if !in.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.AccountID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if _, err := s.accountService.GetAccountByID(userID, in.AccountID); err != nil {
		return err
	}
	category, err := s.categoryService.GetCategoryByID(in.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != in.Type {
		return apperrors.WithFields(apperrors.ErrCategoryTypeMismatch,
			map[string]string{"categoryId": "must be an " + string(in.Type) + " category"})
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	in.Date = in.Date.UTC()
	return nil
}

// CreateTransaction records a transaction on one of the user's accounts.
func (s *transactionService) CreateTransaction(userID int64, in TransactionInput) (*entity.Transaction, error) {
	if err := s.validate(userID, &in); err != nil {
		return nil, err
	}

	transaction := &entity.Transaction{
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		Notes:       in.Notes,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetAccountTransactions lists an account's transactions, optionally only one
// category's, most recent first.
func (s *transactionService) GetAccountTransactions(userID, accountID int64, categoryID *int64) ([]entity.Transaction, error) {
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}

	q := s.db.Where("account_id = ?", accountID)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var transactions []entity.Transaction
	if err := q.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction on one of the user's accounts.
func (s *transactionService) GetTransactionByID(userID, transactionID int64) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := s.db.
		Joins("JOIN accounts ON accounts.id = transactions.account_id AND accounts.deleted_at IS NULL").
		Where("transactions.id = ? AND accounts.user_id = ?", transactionID, userID).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces a transaction's fields. It may move to another of
// the user's accounts.
func (s *transactionService) UpdateTransaction(userID, transactionID int64, in TransactionInput) (*entity.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if in.AccountID == 0 {
		in.AccountID = transaction.AccountID
	}
	if in.Date.IsZero() {
		in.Date = transaction.Date
	}
	if err := s.validate(userID, &in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"account_id":  in.AccountID,
		"category_id": in.CategoryID,
		"type":        in.Type,
		"amount":      in.Amount,
		"date":        in.Date,
		"description": in.Description,
		"notes":       in.Notes,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID int64) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
