// Package api translates budget operations into backend HTTP calls and converts
// between the backend's DTOs and the client models. Every method performs exactly
// one request, with no retries and no caching, and returns transport errors
// unchanged.
package api

import (
	"context"

	"budgetplanner/internal/models"
)

// Doer performs one JSON request. *client.Client satisfies it.
type Doer interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// AuthAPI defines the authentication operations.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error)
}

// UserAPI defines the user operations.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	CreateUser(ctx context.Context, reg models.Registration) (models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.ProfileUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// AccountAPI defines the finance account operations.
type AccountAPI interface {
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error)
	CreateAccount(ctx context.Context, userID int64, in models.AccountInput) (models.Account, error)
	UpdateAccount(ctx context.Context, account models.Account) (models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// CategoryAPI defines the category operations.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// TransactionAPI defines the transaction operations.
type TransactionAPI interface {
	ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error)
	ListTransactionsByCategory(ctx context.Context, accountID, categoryID int64) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (models.Transaction, error)
	CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// ReportAPI defines the report operations.
type ReportAPI interface {
	CategoryReport(ctx context.Context, accountID int64) (models.Report, error)
	CategoryReportFor(ctx context.Context, accountID, categoryID int64) (models.Report, error)
}

// Backend is every resource group together, the collaborator the store needs.
type Backend interface {
	AuthAPI
	UserAPI
	AccountAPI
	CategoryAPI
	TransactionAPI
	ReportAPI
}
