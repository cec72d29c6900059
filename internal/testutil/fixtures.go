package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetplanner/internal/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique login.
func CreateTestUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	return CreateTestUserWithLogin(t, db, fmt.Sprintf("user%d@test.com", nextID()))
}

// CreateTestUserWithLogin creates a user with the given login.
func CreateTestUserWithLogin(t *testing.T, db *gorm.DB, login string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &entity.User{
		Name:         "Test",
		Surname:      "User",
		Login:        login,
		PasswordHash: string(hash),
		RoleID:       entity.DefaultRoleID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a PLN account with a zero opening balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID int64) *entity.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, userID, decimal.Zero)
}

// CreateTestAccountWithBalance creates a PLN account with the given opening balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, userID int64, opening decimal.Decimal) *entity.Account {
	t.Helper()

	account := &entity.Account{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Account %d", nextID()),
		Currency:       "PLN",
		OpeningBalance: opening,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType entity.CategoryType) *entity.Category {
	t.Helper()

	category := &entity.Category{
		Name:  fmt.Sprintf("Test Category %d", nextID()),
		Type:  categoryType,
		Color: "#4ECDC4",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction records a transaction whose type follows the category's.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID int64, category *entity.Category, amount decimal.Decimal) *entity.Transaction {
	t.Helper()

	tx := &entity.Transaction{
		AccountID:   accountID,
		CategoryID:  category.ID,
		Type:        category.Type,
		Amount:      amount,
		Date:        time.Now().UTC(),
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
