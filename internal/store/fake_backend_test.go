package store

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"

	"budgetplanner/internal/api"
	"budgetplanner/internal/client"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"

	"github.com/shopspring/decimal"
)

// fakeBackend is an in-memory backend that recomputes balances from
// transactions the way the real one does. Failures and blocking can be
// injected per method name.
type fakeBackend struct {
	mu           sync.Mutex
	users        map[int64]models.User
	passwords    map[string]string
	accounts     map[int64]models.Account
	categories   map[int64]models.Category
	transactions map[int64]models.Transaction
	nextID       int64

	calls map[string]int
	fail  map[string]error
	// entered is signaled when a method starts; the method then waits on release.
	entered map[string]chan struct{}
	release map[string]chan struct{}
}

var _ api.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users:        make(map[int64]models.User),
		passwords:    make(map[string]string),
		accounts:     make(map[int64]models.Account),
		categories:   make(map[int64]models.Category),
		transactions: make(map[int64]models.Transaction),
		nextID:       100,
		calls:        make(map[string]int),
		fail:         make(map[string]error),
		entered:      make(map[string]chan struct{}),
		release:      make(map[string]chan struct{}),
	}
}

// seed creates a user with two accounts and income/expense categories.
func (f *fakeBackend) seed() {
	f.users[1] = models.User{ID: 1, Name: "Anna", Surname: "Nowak", Login: "anna@example.com"}
	f.passwords["anna@example.com"] = "secret"
	f.accounts[10] = models.Account{ID: 10, UserID: 1, Name: "Main", Currency: "PLN"}
	f.accounts[11] = models.Account{ID: 11, UserID: 1, Name: "Savings", Currency: "PLN"}
	f.categories[1] = models.Category{ID: 1, Name: "Salary", Type: models.TransactionTypeIncome}
	foodBudget := decimal.NewFromInt(800)
	f.categories[2] = models.Category{ID: 2, Name: "Food", Type: models.TransactionTypeExpense, Color: "#FF6B6B", Budget: &foodBudget}
	f.transactions[50] = models.Transaction{ID: 50, AccountID: 10, CategoryID: 1, Amount: decimal.NewFromInt(5000), Type: models.TransactionTypeIncome, Description: "Salary"}
}

func (f *fakeBackend) block(method string) (entered, release chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entered, release = make(chan struct{}, 1), make(chan struct{})
	f.entered[method], f.release[method] = entered, release
	return entered, release
}

func (f *fakeBackend) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	entered, release := f.entered[method], f.release[method]
	err := f.fail[method]
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	return err
}

func (f *fakeBackend) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeBackend) setFail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = err
}

func (f *fakeBackend) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) balance(accountID int64) decimal.Decimal {
	total := f.accounts[accountID].Balance
	for _, t := range f.transactions {
		if t.AccountID == accountID {
			total = total.Add(t.Signed())
		}
	}
	return total
}

func (f *fakeBackend) accountWithBalance(a models.Account) models.Account {
	a.Balance = f.balance(a.ID)
	return a
}

func notFound() error {
	return &client.StatusError{StatusCode: http.StatusNotFound}
}

func (f *fakeBackend) Login(_ context.Context, creds models.Credentials) (models.LoginResult, error) {
	if err := f.enter("Login"); err != nil {
		return models.LoginResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.passwords[creds.Login]; !ok || pw != creds.Password {
		return models.LoginResult{}, &client.StatusError{StatusCode: http.StatusUnauthorized}
	}
	for _, u := range f.users {
		if u.Login == creds.Login {
			return models.LoginResult{Token: "token-" + u.Login, User: u}, nil
		}
	}
	return models.LoginResult{}, notFound()
}

func (f *fakeBackend) ListUsers(context.Context) ([]models.User, error) {
	if err := f.enter("ListUsers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeBackend) GetUser(_ context.Context, id int64) (models.User, error) {
	if err := f.enter("GetUser"); err != nil {
		return models.User{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, notFound()
	}
	return u, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, reg models.Registration) (models.User, error) {
	if err := f.enter("CreateUser"); err != nil {
		return models.User{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := models.User{ID: f.id(), Name: reg.Name, Surname: reg.Surname, Login: reg.Login, Age: reg.Age}
	f.users[u.ID] = u
	f.passwords[reg.Login] = reg.Password
	return u, nil
}

func (f *fakeBackend) UpdateUser(_ context.Context, id int64, upd models.ProfileUpdate) (models.User, error) {
	if err := f.enter("UpdateUser"); err != nil {
		return models.User{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, notFound()
	}
	u.Name, u.Surname, u.Login, u.Age = upd.Name, upd.Surname, upd.Login, upd.Age
	f.users[id] = u
	return models.User{}, nil
}

func (f *fakeBackend) DeleteUser(_ context.Context, id int64) error {
	if err := f.enter("DeleteUser"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeBackend) ListAccounts(_ context.Context, userID int64) ([]models.Account, error) {
	if err := f.enter("ListAccounts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Account
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, f.accountWithBalance(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBackend) GetAccount(_ context.Context, _, accountID int64) (models.Account, error) {
	if err := f.enter("GetAccount"); err != nil {
		return models.Account{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return models.Account{}, notFound()
	}
	return f.accountWithBalance(a), nil
}

func (f *fakeBackend) CreateAccount(_ context.Context, userID int64, in models.AccountInput) (models.Account, error) {
	if err := f.enter("CreateAccount"); err != nil {
		return models.Account{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a := models.Account{ID: f.id(), UserID: userID, Name: in.Name, Currency: in.Currency, Balance: in.Balance, Description: in.Description}
	f.accounts[a.ID] = a
	return a, nil
}

func (f *fakeBackend) UpdateAccount(_ context.Context, account models.Account) (models.Account, error) {
	if err := f.enter("UpdateAccount"); err != nil {
		return models.Account{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.accounts[account.ID]
	if !ok {
		return models.Account{}, notFound()
	}
	existing.Name, existing.Currency, existing.Description = account.Name, account.Currency, account.Description
	f.accounts[account.ID] = existing
	return f.accountWithBalance(existing), nil
}

func (f *fakeBackend) DeleteAccount(_ context.Context, id int64) error {
	if err := f.enter("DeleteAccount"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
	return nil
}

func (f *fakeBackend) ListCategories(context.Context) ([]models.Category, error) {
	if err := f.enter("ListCategories"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBackend) GetCategory(_ context.Context, id int64) (models.Category, error) {
	if err := f.enter("GetCategory"); err != nil {
		return models.Category{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return models.Category{}, notFound()
	}
	return c, nil
}

func (f *fakeBackend) CreateCategory(_ context.Context, in models.CategoryInput) (models.Category, error) {
	if err := f.enter("CreateCategory"); err != nil {
		return models.Category{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Category{ID: f.id(), Name: in.Name, Type: in.Type, Color: in.Color, Description: in.Description, Budget: in.Budget}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeBackend) UpdateCategory(_ context.Context, c models.Category) (models.Category, error) {
	if err := f.enter("UpdateCategory"); err != nil {
		return models.Category{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[c.ID]; !ok {
		return models.Category{}, notFound()
	}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeBackend) DeleteCategory(_ context.Context, id int64) error {
	if err := f.enter("DeleteCategory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.categories, id)
	return nil
}

func (f *fakeBackend) ListTransactions(_ context.Context, accountID int64) ([]models.Transaction, error) {
	if err := f.enter("ListTransactions"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBackend) ListTransactionsByCategory(_ context.Context, accountID, categoryID int64) ([]models.Transaction, error) {
	if err := f.enter("ListTransactionsByCategory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.AccountID == accountID && t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetTransaction(_ context.Context, id int64) (models.Transaction, error) {
	if err := f.enter("GetTransaction"); err != nil {
		return models.Transaction{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.transactions[id]
	if !ok {
		return models.Transaction{}, notFound()
	}
	return t, nil
}

func (f *fakeBackend) CreateTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	if err := f.enter("CreateTransaction"); err != nil {
		return models.Transaction{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.id()
	f.transactions[t.ID] = t
	return t, nil
}

func (f *fakeBackend) UpdateTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	if err := f.enter("UpdateTransaction"); err != nil {
		return models.Transaction{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.transactions[t.ID]; !ok {
		return models.Transaction{}, notFound()
	}
	f.transactions[t.ID] = t
	return t, nil
}

func (f *fakeBackend) DeleteTransaction(_ context.Context, id int64) error {
	if err := f.enter("DeleteTransaction"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.transactions, id)
	return nil
}

func (f *fakeBackend) report(accountID, categoryID int64) models.Report {
	totals := make(map[int64]decimal.Decimal)
	var order []int64
	for _, t := range f.transactions {
		if t.AccountID != accountID || (categoryID != 0 && t.CategoryID != categoryID) {
			continue
		}
		if _, ok := totals[t.CategoryID]; !ok {
			order = append(order, t.CategoryID)
		}
		totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	r := models.Report{AccountID: accountID, CategoryID: categoryID}
	for _, id := range order {
		r.Entries = append(r.Entries, models.ReportEntry{CategoryID: id, CategoryName: f.categories[id].Name, Amount: totals[id]})
	}
	return r
}

func (f *fakeBackend) CategoryReport(_ context.Context, accountID int64) (models.Report, error) {
	if err := f.enter("CategoryReport"); err != nil {
		return models.Report{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report(accountID, 0), nil
}

func (f *fakeBackend) CategoryReportFor(_ context.Context, accountID, categoryID int64) (models.Report, error) {
	if err := f.enter("CategoryReportFor"); err != nil {
		return models.Report{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report(accountID, categoryID), nil
}

// networkDown is what the HTTP client returns when no response arrives.
var networkDown = apperrors.Wrap(apperrors.ErrNetwork, errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"))
