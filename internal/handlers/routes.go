package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/config"
)

// Handlers groups every handler of the development backend.
type Handlers struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Accounts     *AccountHandler
	Categories   *CategoryHandler
	Transactions *TransactionHandler
	Reports      *ReportHandler
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// ginPath turns a {name} path template into Gin's :name form.
func ginPath(template string) string {
	return placeholder.ReplaceAllString(template, ":$1")
}

// RegisterRoutes mounts the handlers on the same path templates the budget
// client is configured with. Login and registration are public; everything else
// goes through auth.
func RegisterRoutes(r gin.IRouter, e config.Endpoints, h Handlers, auth gin.HandlerFunc) {
	r.POST(ginPath(e.Login), h.Auth.Login)
	r.POST(ginPath(e.UserCreate), h.Users.CreateUser)

	p := r.Group("", auth)

	p.GET(ginPath(e.UsersAll), h.Users.ListUsers)
	p.GET(ginPath(e.UserByID), h.Users.GetUser)
	p.PUT(ginPath(e.UserUpdate), h.Users.UpdateUser)
	p.DELETE(ginPath(e.UserDelete), h.Users.DeleteUser)

	p.GET(ginPath(e.AccountsByUser), h.Accounts.GetUserAccounts)
	p.GET(ginPath(e.AccountByID), h.Accounts.GetAccountByID)
	p.POST(ginPath(e.AccountCreate), h.Accounts.CreateAccount)
	p.PUT(ginPath(e.AccountUpdate), h.Accounts.UpdateAccount)
	p.DELETE(ginPath(e.AccountDelete), h.Accounts.DeleteAccount)

	p.GET(ginPath(e.CategoriesAll), h.Categories.GetCategories)
	p.GET(ginPath(e.CategoryByID), h.Categories.GetCategoryByID)
	p.POST(ginPath(e.CategoryCreate), h.Categories.CreateCategory)
	p.PUT(ginPath(e.CategoryUpdate), h.Categories.UpdateCategory)
	p.DELETE(ginPath(e.CategoryDelete), h.Categories.DeleteCategory)

	p.GET(ginPath(e.TransactionsByAccount), h.Transactions.GetAccountTransactions)
	p.GET(ginPath(e.TransactionsByCategory), h.Transactions.GetCategoryTransactions)
	p.GET(ginPath(e.TransactionByID), h.Transactions.GetTransactionByID)
	p.POST(ginPath(e.TransactionCreate), h.Transactions.CreateTransaction)
	p.PUT(ginPath(e.TransactionUpdate), h.Transactions.UpdateTransaction)
	p.DELETE(ginPath(e.TransactionDelete), h.Transactions.DeleteTransaction)

	p.GET(ginPath(e.ReportAllCategories), h.Reports.AllCategoryReport)
	p.GET(ginPath(e.ReportByCategory), h.Reports.CategoryReport)
}
