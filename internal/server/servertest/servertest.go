// Package servertest runs the development backend on an in-memory database for
// end-to-end tests of the client side.
package servertest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"budgetplanner/internal/config"
	"budgetplanner/internal/entity"
	"budgetplanner/internal/logger"
	"budgetplanner/internal/server"
	"budgetplanner/internal/testutil"
)

// Login and password of the seeded user.
const (
	Login    = "anna@example.com"
	Password = testutil.TestPassword
)

// Backend is a running development backend.
type Backend struct {
	*httptest.Server
	DB *gorm.DB

	User    *entity.User
	Main    *entity.Account
	Savings *entity.Account
	Salary  *entity.Category
	Food    *entity.Category
}

// New starts a backend seeded with one user, two accounts (Main with 100 PLN
// opening balance, empty Savings), an income and an expense category, and a
// salary of 5000 on Main. It is shut down when the test ends.
func New(t *testing.T) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Replace(zap.NewNop().Sugar())
	config.SetServer(&config.ServerConfig{
		Port:             "8080",
		JWTSecret:        "test-secret-key-32-characters-long",
		JWTExpirationDur: time.Hour,
	})

	db := testutil.SetupTestDB(t)
	b := &Backend{DB: db}
	b.User = testutil.CreateTestUserWithLogin(t, db, Login)
	b.Main = testutil.CreateTestAccountWithBalance(t, db, b.User.ID, decimal.NewFromInt(100))
	b.Savings = testutil.CreateTestAccount(t, db, b.User.ID)
	b.Salary = testutil.CreateTestCategory(t, db, entity.CategoryTypeIncome)
	b.Food = testutil.CreateTestCategory(t, db, entity.CategoryTypeExpense)
	testutil.CreateTestTransaction(t, db, b.Main.ID, b.Salary, decimal.NewFromInt(5000))

	b.Server = httptest.NewServer(server.NewRouter(db, config.DefaultEndpoints()))
	t.Cleanup(func() {
		b.Server.Close()
		testutil.TeardownTestDB(t, db)
	})
	return b
}
