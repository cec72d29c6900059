package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetplanner/internal/entity"
	apperrors "budgetplanner/internal/errors"
)

// accountService handles account-related business logic. Balances are never
// stored; every read recomputes them from the account's transactions.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates an account for a user with an opening balance.
func (s *accountService) CreateAccount(userID int64, in AccountInput) (*AccountBalance, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if in.Currency == "" {
		in.Currency = "PLN"
	}

	account := &entity.Account{
		UserID:         userID,
		Name:           in.Name,
		Currency:       strings.ToUpper(in.Currency),
		OpeningBalance: in.OpeningBalance,
		Description:    in.Description,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &AccountBalance{Account: *account, Balance: account.OpeningBalance}, nil
}

// GetUserAccounts lists a user's accounts with their balances, ordered by ID.
func (s *accountService) GetUserAccounts(userID int64) ([]AccountBalance, error) {
	var accounts []entity.Account
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(accounts) == 0 {
		return []AccountBalance{}, nil
	}

	ids := make([]int64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	sums, err := s.signedSums(ids)
	if err != nil {
		return nil, err
	}

	out := make([]AccountBalance, len(accounts))
	for i, a := range accounts {
		out[i] = AccountBalance{Account: a, Balance: a.OpeningBalance.Add(sums[a.ID])}
	}
	return out, nil
}

// GetAccountByID retrieves one of the user's accounts with its balance.
func (s *accountService) GetAccountByID(userID, accountID int64) (*AccountBalance, error) {
	account, err := s.find(userID, accountID)
	if err != nil {
		return nil, err
	}
	sums, err := s.signedSums([]int64{account.ID})
	if err != nil {
		return nil, err
	}
	return &AccountBalance{Account: *account, Balance: account.OpeningBalance.Add(sums[account.ID])}, nil
}

// UpdateAccount changes an account's name, currency and description. The
// opening balance is fixed at creation.
func (s *accountService) UpdateAccount(userID, accountID int64, in AccountInput) (*AccountBalance, error) {
	account, err := s.find(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Currency != "" {
		updates["currency"] = strings.ToUpper(in.Currency)
	}
	updates["description"] = in.Description

	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetAccountByID(userID, accountID)
}

// DeleteAccount soft-deletes an account together with its transactions.
func (s *accountService) DeleteAccount(userID, accountID int64) error {
	account, err := s.find(userID, accountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&entity.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func (s *accountService) find(userID, accountID int64) (*entity.Account, error) {
	var account entity.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// signedSums totals income minus expense per account. Summing happens here
// rather than in SQL so that decimals survive SQLite's numeric affinity.
func (s *accountService) signedSums(accountIDs []int64) (map[int64]decimal.Decimal, error) {
	var txs []entity.Transaction
	if err := s.db.Select("account_id", "type", "amount").
		Where("account_id IN ?", accountIDs).
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sums := make(map[int64]decimal.Decimal, len(accountIDs))
	for _, t := range txs {
		sums[t.AccountID] = sums[t.AccountID].Add(t.Signed())
	}
	return sums, nil
}
