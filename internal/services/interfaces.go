package services

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetplanner/internal/entity"
	"budgetplanner/internal/pagination"
)

// UserInput carries the writable user fields. An empty Password on update
// keeps the current one.
type UserInput struct {
	Name     string
	Surname  string
	Login    string
	Password string
	Age      int
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(in UserInput) (*entity.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[entity.User], error)
	GetUserByID(id int64) (*entity.User, error)
	GetUserByLogin(login string) (*entity.User, error)
	UpdateUser(id int64, in UserInput) (*entity.User, error)
	DeleteUser(id int64) error
	VerifyPassword(user *entity.User, password string) bool
	AttemptLogin(login, password string) (*entity.User, error)
}

// AccountBalance is an account together with its computed balance.
type AccountBalance struct {
	entity.Account
	Balance decimal.Decimal
}

// AccountInput carries the writable account fields.
type AccountInput struct {
	Name           string
	Currency       string
	Description    string
	OpeningBalance decimal.Decimal
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID int64, in AccountInput) (*AccountBalance, error)
	GetUserAccounts(userID int64) ([]AccountBalance, error)
	GetAccountByID(userID, accountID int64) (*AccountBalance, error)
	UpdateAccount(userID, accountID int64, in AccountInput) (*AccountBalance, error)
	DeleteAccount(userID, accountID int64) error
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string
	Type        entity.CategoryType
	Color       string
	Description string
	Budget      *decimal.Decimal
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(in CategoryInput) (*entity.Category, error)
	GetCategories() ([]entity.Category, error)
	GetCategoryByID(id int64) (*entity.Category, error)
	UpdateCategory(id int64, in CategoryInput) (*entity.Category, error)
	DeleteCategory(id int64) error
}

// TransactionInput carries the writable transaction fields.
type TransactionInput struct {
	AccountID   int64
	CategoryID  int64
	Type        entity.CategoryType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Notes       string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID int64, in TransactionInput) (*entity.Transaction, error)
	GetAccountTransactions(userID, accountID int64, categoryID *int64) ([]entity.Transaction, error)
	GetTransactionByID(userID, transactionID int64) (*entity.Transaction, error)
	UpdateTransaction(userID, transactionID int64, in TransactionInput) (*entity.Transaction, error)
	DeleteTransaction(userID, transactionID int64) error
}

// CategoryTotal is one line of a category report.
type CategoryTotal struct {
	CategoryID   int64
	CategoryName string
	Total        decimal.Decimal
}

// ReportServicer defines the contract for per-category reports.
type ReportServicer interface {
	CategoryTotals(userID, accountID int64, categoryID *int64) ([]CategoryTotal, error)
}
