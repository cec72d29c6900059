package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Endpoints holds the path template of every backend operation. Templates may use
// the {id}, {userId}, {accountId} and {categoryId} placeholders.
type Endpoints struct {
	Login string

	UsersAll   string
	UserByID   string
	UserCreate string
	UserUpdate string
	UserDelete string

	AccountsByUser string
	AccountByID    string
	AccountCreate  string
	AccountUpdate  string
	AccountDelete  string

	CategoriesAll  string
	CategoryByID   string
	CategoryCreate string
	CategoryUpdate string
	CategoryDelete string

	TransactionsByAccount  string
	TransactionsByCategory string
	TransactionByID        string
	TransactionCreate      string
	TransactionUpdate      string
	TransactionDelete      string

	ReportAllCategories string
	ReportByCategory    string
}

// DefaultEndpoints mirrors the reference backend's routes.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login: "/api/Login",

		UsersAll:   "/api/Users/AllUsers",
		UserByID:   "/api/Users/{id}",
		UserCreate: "/api/Users/AddUser",
		UserUpdate: "/api/Users/UpdateUser",
		UserDelete: "/api/Users/DeleteUser/{id}",

		AccountsByUser: "/api/FinanceAccount/GetAllFinanceAccounts/{userId}",
		AccountByID:    "/api/FinanceAccount/{userId}/{accountId}",
		AccountCreate:  "/api/FinanceAccount/AddFinanceAccount",
		AccountUpdate:  "/api/FinanceAccount/UpdateFinanceAccount",
		AccountDelete:  "/api/FinanceAccount/DeleteFinanceAccount/{id}",

		CategoriesAll:  "/api/TransactionCategory/AllCategories",
		CategoryByID:   "/api/TransactionCategory/GetCategory/{id}",
		CategoryCreate: "/api/TransactionCategory/AddCategory",
		CategoryUpdate: "/api/TransactionCategory/UpdateCategory",
		CategoryDelete: "/api/TransactionCategory/DeleteCategory/{id}",

		TransactionsByAccount:  "/api/Transaction/AllTransactions/{accountId}",
		TransactionsByCategory: "/api/Transaction/AllTransactions/{accountId}/{categoryId}",
		TransactionByID:        "/api/Transaction/{id}",
		TransactionCreate:      "/api/Transaction/AddTransaction",
		TransactionUpdate:      "/api/Transaction/UpdateTransaction",
		TransactionDelete:      "/api/Transaction/DeleteTransaction/{id}",

		ReportAllCategories: "/api/Report/AllCategoryReport/{accountId}",
		ReportByCategory:    "/api/Report/{accountId}/{categoryId}",
	}
}

// endpointVars lists the environment override for each template.
func (e *Endpoints) endpointVars() map[string]*string {
	return map[string]*string{
		"BUDGET_PATH_AUTH_LOGIN": &e.Login,

		"BUDGET_PATH_USERS_ALL":    &e.UsersAll,
		"BUDGET_PATH_USERS_BY_ID":  &e.UserByID,
		"BUDGET_PATH_USERS_CREATE": &e.UserCreate,
		"BUDGET_PATH_USERS_UPDATE": &e.UserUpdate,
		"BUDGET_PATH_USERS_DELETE": &e.UserDelete,

		"BUDGET_PATH_ACCOUNTS_BY_USER": &e.AccountsByUser,
		"BUDGET_PATH_ACCOUNTS_BY_ID":   &e.AccountByID,
		"BUDGET_PATH_ACCOUNTS_CREATE":  &e.AccountCreate,
		"BUDGET_PATH_ACCOUNTS_UPDATE":  &e.AccountUpdate,
		"BUDGET_PATH_ACCOUNTS_DELETE":  &e.AccountDelete,

		"BUDGET_PATH_CATEGORIES_ALL":    &e.CategoriesAll,
		"BUDGET_PATH_CATEGORIES_BY_ID":  &e.CategoryByID,
		"BUDGET_PATH_CATEGORIES_CREATE": &e.CategoryCreate,
		"BUDGET_PATH_CATEGORIES_UPDATE": &e.CategoryUpdate,
		"BUDGET_PATH_CATEGORIES_DELETE": &e.CategoryDelete,

		"BUDGET_PATH_TRANSACTIONS_BY_ACCOUNT":  &e.TransactionsByAccount,
		"BUDGET_PATH_TRANSACTIONS_BY_CATEGORY": &e.TransactionsByCategory,
		"BUDGET_PATH_TRANSACTIONS_BY_ID":       &e.TransactionByID,
		"BUDGET_PATH_TRANSACTIONS_CREATE":      &e.TransactionCreate,
		"BUDGET_PATH_TRANSACTIONS_UPDATE":      &e.TransactionUpdate,
		"BUDGET_PATH_TRANSACTIONS_DELETE":      &e.TransactionDelete,

		"BUDGET_PATH_REPORTS_ALL_CATEGORIES": &e.ReportAllCategories,
		"BUDGET_PATH_REPORTS_BY_CATEGORY":    &e.ReportByCategory,
	}
}

// LoadEndpoints starts from DefaultEndpoints and applies BUDGET_PATH_* overrides.
func LoadEndpoints() Endpoints {
	e := DefaultEndpoints()
	for key, field := range e.endpointVars() {
		*field = getEnv(key, *field)
	}
	return e
}

func (e Endpoints) validate() []string {
	var problems []string
	for key, field := range e.endpointVars() {
		if !strings.HasPrefix(*field, "/") {
			problems = append(problems, fmt.Sprintf("%s must start with '/', got %q", key, *field))
		}
	}
	sort.Strings(problems)
	return problems
}

// Path fills a template's placeholders. Unknown placeholders are left untouched.
func Path(template string, params map[string]int64) string {
	if len(params) == 0 {
		return template
	}
	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", strconv.FormatInt(value, 10))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
