package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"budgetplanner/internal/entity"
	"budgetplanner/internal/logger"
	"budgetplanner/internal/pagination"
	"budgetplanner/internal/services"
	"budgetplanner/internal/validator"
)

// --- mock user service ---

type mockUserService struct {
	createUserFn   func(in services.UserInput) (*entity.User, error)
	listUsersFn    func(page pagination.PageRequest) (*pagination.PageResponse[entity.User], error)
	getUserByIDFn  func(id int64) (*entity.User, error)
	updateUserFn   func(id int64, in services.UserInput) (*entity.User, error)
	deleteUserFn   func(id int64) error
	attemptLoginFn func(login, password string) (*entity.User, error)
}

func (m *mockUserService) CreateUser(in services.UserInput) (*entity.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(in)
	}
	return &entity.User{}, nil
}

func (m *mockUserService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[entity.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(page)
	}
	resp := pagination.NewPageResponse([]entity.User{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockUserService) GetUserByID(id int64) (*entity.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &entity.User{Base: entity.Base{ID: id}}, nil
}

func (m *mockUserService) GetUserByLogin(login string) (*entity.User, error) {
	return &entity.User{Login: login}, nil
}

func (m *mockUserService) UpdateUser(id int64, in services.UserInput) (*entity.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(id, in)
	}
	return &entity.User{Base: entity.Base{ID: id}}, nil
}

func (m *mockUserService) DeleteUser(id int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(id)
	}
	return nil
}

func (m *mockUserService) VerifyPassword(_ *entity.User, _ string) bool { return true }

func (m *mockUserService) AttemptLogin(login, password string) (*entity.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(login, password)
	}
	return &entity.User{Login: login}, nil
}

// --- mock account service ---

type mockAccountService struct {
	createAccountFn   func(userID int64, in services.AccountInput) (*services.AccountBalance, error)
	getUserAccountsFn func(userID int64) ([]services.AccountBalance, error)
	getAccountByIDFn  func(userID, accountID int64) (*services.AccountBalance, error)
	updateAccountFn   func(userID, accountID int64, in services.AccountInput) (*services.AccountBalance, error)
	deleteAccountFn   func(userID, accountID int64) error
}

func (m *mockAccountService) CreateAccount(userID int64, in services.AccountInput) (*services.AccountBalance, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(userID, in)
	}
	return &services.AccountBalance{}, nil
}

func (m *mockAccountService) GetUserAccounts(userID int64) ([]services.AccountBalance, error) {
	if m.getUserAccountsFn != nil {
		return m.getUserAccountsFn(userID)
	}
	return []services.AccountBalance{}, nil
}

func (m *mockAccountService) GetAccountByID(userID, accountID int64) (*services.AccountBalance, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(userID, accountID)
	}
	return &services.AccountBalance{}, nil
}

func (m *mockAccountService) UpdateAccount(userID, accountID int64, in services.AccountInput) (*services.AccountBalance, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(userID, accountID, in)
	}
	return &services.AccountBalance{}, nil
}

func (m *mockAccountService) DeleteAccount(userID, accountID int64) error {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(userID, accountID)
	}
	return nil
}

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn  func(in services.CategoryInput) (*entity.Category, error)
	getCategoriesFn   func() ([]entity.Category, error)
	getCategoryByIDFn func(id int64) (*entity.Category, error)
	updateCategoryFn  func(id int64, in services.CategoryInput) (*entity.Category, error)
	deleteCategoryFn  func(id int64) error
}

func (m *mockCategoryService) CreateCategory(in services.CategoryInput) (*entity.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(in)
	}
	return &entity.Category{}, nil
}

func (m *mockCategoryService) GetCategories() ([]entity.Category, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn()
	}
	return []entity.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(id int64) (*entity.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(id)
	}
	return &entity.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(id int64, in services.CategoryInput) (*entity.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, in)
	}
	return &entity.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(id int64) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn      func(userID int64, in services.TransactionInput) (*entity.Transaction, error)
	getAccountTransactionsFn func(userID, accountID int64, categoryID *int64) ([]entity.Transaction, error)
	getTransactionByIDFn     func(userID, id int64) (*entity.Transaction, error)
	updateTransactionFn      func(userID, id int64, in services.TransactionInput) (*entity.Transaction, error)
	deleteTransactionFn      func(userID, id int64) error
}

func (m *mockTransactionService) CreateTransaction(userID int64, in services.TransactionInput) (*entity.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, in)
	}
	return &entity.Transaction{}, nil
}

func (m *mockTransactionService) GetAccountTransactions(userID, accountID int64, categoryID *int64) ([]entity.Transaction, error) {
	if m.getAccountTransactionsFn != nil {
		return m.getAccountTransactionsFn(userID, accountID, categoryID)
	}
	return []entity.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, id int64) (*entity.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, id)
	}
	return &entity.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, id int64, in services.TransactionInput) (*entity.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, id, in)
	}
	return &entity.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, id int64) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, id)
	}
	return nil
}

// --- mock report service ---

type mockReportService struct {
	categoryTotalsFn func(userID, accountID int64, categoryID *int64) ([]services.CategoryTotal, error)
}

func (m *mockReportService) CategoryTotals(userID, accountID int64, categoryID *int64) ([]services.CategoryTotal, error) {
	if m.categoryTotalsFn != nil {
		return m.categoryTotalsFn(userID, accountID, categoryID)
	}
	return nil, nil
}

// verify interface compliance
var (
	_ services.UserServicer        = (*mockUserService)(nil)
	_ services.AccountServicer     = (*mockAccountService)(nil)
	_ services.CategoryServicer    = (*mockCategoryService)(nil)
	_ services.TransactionServicer = (*mockTransactionService)(nil)
	_ services.ReportServicer      = (*mockReportService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	logger.Replace(zap.NewNop().Sugar())
}

func injectUserID(uid int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %s, got %v", code, errObj["code"])
	}
}

func errorFields(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	fields, _ := errObj["fields"].(map[string]interface{})
	return fields
}
