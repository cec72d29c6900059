package store

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"budgetplanner/internal/client"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"
	"budgetplanner/internal/pagination"
	"budgetplanner/internal/session"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *fakeBackend, *session.Session) {
	t.Helper()
	backend := newFakeBackend()
	backend.seed()
	sess := session.New(nil)
	s := New(backend, sess, WithLogger(zap.NewNop().Sugar()), WithClock(func() time.Time { return fixedNow }))
	return s, backend, sess
}

func loggedInStore(t *testing.T) (*Store, *fakeBackend, *session.Session) {
	t.Helper()
	s, backend, sess := newTestStore(t)
	if res := s.Login(context.Background(), models.Credentials{Login: "anna@example.com", Password: "secret"}); !res.Success {
		t.Fatalf("login failed: %s", res.Error)
	}
	return s, backend, sess
}

func TestLogin(t *testing.T) {
	t.Run("loads accounts, categories and first account's transactions", func(t *testing.T) {
		s, backend, sess := loggedInStore(t)

		st := s.Snapshot()
		if st.User == nil || st.User.ID != 1 {
			t.Fatalf("expected user 1, got %+v", st.User)
		}
		if len(st.Accounts) != 2 || len(st.Categories) != 2 {
			t.Errorf("expected 2 accounts and 2 categories, got %d and %d", len(st.Accounts), len(st.Categories))
		}
		if st.SelectedAccountID != 10 {
			t.Errorf("expected first account selected, got %d", st.SelectedAccountID)
		}
		if len(st.Transactions) != 1 || st.TransactionsAccountID != 10 {
			t.Errorf("expected account 10's transaction, got %+v", st.Transactions)
		}
		if n := backend.callCount("ListTransactions"); n != 1 {
			t.Errorf("expected exactly one transaction fetch, got %d", n)
		}
		if st.Loading || st.Error != "" {
			t.Errorf("unexpected loading/error: %v %q", st.Loading, st.Error)
		}
		if !sess.Valid() || sess.UserID() != 1 {
			t.Error("expected session to be persisted")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		s, _, sess := newTestStore(t)
		res := s.Login(context.Background(), models.Credentials{Login: "anna@example.com", Password: "nope"})
		if res.Success {
			t.Fatal("expected failure")
		}
		if !errors.Is(res.Err, apperrors.ErrInvalidCredentials) || res.Error != apperrors.ErrInvalidCredentials.Message {
			t.Errorf("unexpected error: %v / %q", res.Err, res.Error)
		}
		if s.Snapshot().Error != res.Error {
			t.Error("expected state error to match")
		}
		if sess.Valid() {
			t.Error("session must stay empty")
		}
	})

	t.Run("server and network failures", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want string
		}{
			{"5xx", &client.StatusError{StatusCode: http.StatusBadGateway}, apperrors.ErrServer.Message},
			{"no response", networkDown, apperrors.ErrNetwork.Message},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, backend, _ := newTestStore(t)
				backend.setFail("Login", tt.err)
				res := s.Login(context.Background(), models.Credentials{Login: "anna@example.com", Password: "secret"})
				if res.Success || res.Error != tt.want {
					t.Errorf("expected %q, got %+v", tt.want, res)
				}
			})
		}
	})

	t.Run("missing fields are rejected locally", func(t *testing.T) {
		s, backend, _ := newTestStore(t)
		res := s.Login(context.Background(), models.Credentials{})
		if res.Success || res.ValidationErrors["login"] == "" || res.ValidationErrors["password"] == "" {
			t.Errorf("expected validation errors, got %+v", res)
		}
		if backend.callCount("Login") != 0 {
			t.Error("backend must not be called")
		}
	})
}

func TestRegister(t *testing.T) {
	t.Run("logs in after creating the user", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		res := s.Register(context.Background(), models.Registration{Name: "Jan", Login: "jan@example.com", Password: "pw"})
		if !res.Success || res.RequiresManualLogin {
			t.Fatalf("unexpected result: %+v", res)
		}
		if u := s.Snapshot().User; u == nil || u.Login != "jan@example.com" {
			t.Errorf("expected jan to be signed in, got %+v", u)
		}
	})

	t.Run("requires manual login when auto-login fails", func(t *testing.T) {
		s, backend, _ := newTestStore(t)
		backend.setFail("Login", &client.StatusError{StatusCode: http.StatusInternalServerError})
		res := s.Register(context.Background(), models.Registration{Name: "Jan", Login: "jan@example.com", Password: "pw"})
		if !res.Success || !res.RequiresManualLogin {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Value.Login != "jan@example.com" {
			t.Errorf("expected created user, got %+v", res.Value)
		}
		if s.Snapshot().User != nil {
			t.Error("no user should be signed in")
		}
	})

	t.Run("backend rejection fails the registration", func(t *testing.T) {
		s, backend, _ := newTestStore(t)
		backend.setFail("CreateUser", &client.StatusError{
			StatusCode: http.StatusBadRequest,
			Body:       []byte(`{"title":"One or more validation errors occurred.","errors":{"Login":["Login is taken"]}}`),
		})
		res := s.Register(context.Background(), models.Registration{Login: "anna@example.com", Password: "pw"})
		if res.Success || res.ValidationErrors["login"] != "Login is taken" {
			t.Errorf("unexpected result: %+v", res)
		}
	})
}

func TestLogout(t *testing.T) {
	s, backend, sess := loggedInStore(t)
	s.Logout()

	st := s.Snapshot()
	if st.User != nil || len(st.Accounts) != 0 || len(st.Transactions) != 0 || st.SelectedAccountID != 0 {
		t.Errorf("expected user data cleared, got %+v", st)
	}
	if len(st.Categories) != 2 {
		t.Error("categories are global and should survive logout")
	}
	if sess.Valid() {
		t.Error("expected session cleared")
	}
	if backend.callCount("Login") != 1 {
		t.Error("logout must not call the backend")
	}
}

func TestFetchAccounts(t *testing.T) {
	t.Run("full replace and idempotent", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		backend.mu.Lock()
		backend.accounts[12] = models.Account{ID: 12, UserID: 1, Name: "Cash", Currency: "EUR"}
		delete(backend.accounts, 11)
		backend.mu.Unlock()

		for i := 0; i < 2; i++ {
			res := s.FetchAccounts(context.Background(), 0, false)
			if !res.Success || len(res.Value) != 2 {
				t.Fatalf("unexpected result: %+v", res)
			}
		}
		st := s.Snapshot()
		if st.Accounts[0].ID != 10 || st.Accounts[1].ID != 12 {
			t.Errorf("expected accounts 10 and 12, got %+v", st.Accounts)
		}
		if st.SelectedAccountID != 10 {
			t.Errorf("selection should be kept, got %d", st.SelectedAccountID)
		}
		if backend.callCount("ListTransactions") != 1 {
			t.Error("unchanged selection must not refetch transactions")
		}
	})

	t.Run("not logged in", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		res := s.FetchAccounts(context.Background(), 0, false)
		if res.Success || !errors.Is(res.Err, apperrors.ErrNotLoggedIn) {
			t.Errorf("unexpected result: %+v", res)
		}
	})
}

func TestFetchTransactions_SingleFlight(t *testing.T) {
	s, backend, _ := loggedInStore(t)
	before := backend.callCount("ListTransactions")
	entered, release := backend.block("ListTransactions")

	var wg sync.WaitGroup
	var first Result[[]models.Transaction]
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = s.FetchTransactions(context.Background(), 10)
	}()
	<-entered

	if !s.Snapshot().Loading {
		t.Error("expected loading while a fetch is in flight")
	}
	second := s.FetchTransactions(context.Background(), 10)
	if !second.Success || second.Value != nil {
		t.Errorf("expected empty no-op result, got %+v", second)
	}

	close(release)
	wg.Wait()

	if !first.Success || len(first.Value) != 1 {
		t.Errorf("unexpected first result: %+v", first)
	}
	if n := backend.callCount("ListTransactions") - before; n != 1 {
		t.Errorf("expected exactly one network call, got %d", n)
	}
	if s.Snapshot().Loading {
		t.Error("loading should be cleared")
	}
}

func TestSelectAccount(t *testing.T) {
	s, backend, _ := loggedInStore(t)
	backend.mu.Lock()
	backend.transactions[60] = models.Transaction{ID: 60, AccountID: 11, CategoryID: 2, Amount: decimal.NewFromInt(20), Type: models.TransactionTypeExpense}
	backend.mu.Unlock()

	res := s.SelectAccount(context.Background(), 11)
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	st := s.Snapshot()
	if st.SelectedAccountID != 11 || st.TransactionsAccountID != 11 || len(st.Transactions) != 1 || st.Transactions[0].ID != 60 {
		t.Errorf("unexpected state: %+v", st)
	}

	if res := s.SelectAccount(context.Background(), 99); res.Success || !errors.Is(res.Err, apperrors.ErrAccountNotFound) {
		t.Errorf("expected local not-found, got %+v", res)
	}
}

func TestAddTransaction(t *testing.T) {
	t.Run("refetches list and recomputed balance", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		res := s.AddTransaction(context.Background(), models.TransactionInput{
			CategoryID:  2,
			Amount:      decimal.NewFromInt(250),
			Type:        models.TransactionTypeExpense,
			Description: "Groceries",
		})
		if !res.Success {
			t.Fatalf("unexpected failure: %s %v", res.Error, res.ValidationErrors)
		}
		if res.Value.ID == 0 || !res.Value.Date.Equal(fixedNow) || res.Value.AccountID != 10 {
			t.Errorf("unexpected transaction: %+v", res.Value)
		}

		st := s.Snapshot()
		if _, ok := findTransaction(st.Transactions, res.Value.ID); !ok {
			t.Error("expected new transaction in the refetched list")
		}
		account, _ := st.SelectedAccount()
		if !account.Balance.Equal(decimal.NewFromInt(4750)) {
			t.Errorf("expected backend-computed balance 4750, got %s", account.Balance)
		}
		if !s.Balance().Equal(decimal.NewFromInt(4750)) {
			t.Errorf("expected derived balance 4750, got %s", s.Balance())
		}
	})

	t.Run("category type must match", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		res := s.AddTransaction(context.Background(), models.TransactionInput{
			CategoryID:  1,
			Amount:      decimal.NewFromInt(10),
			Type:        models.TransactionTypeExpense,
			Description: "Wrong bucket",
		})
		if res.Success || !errors.Is(res.Err, apperrors.ErrCategoryTypeMismatch) || res.ValidationErrors["categoryId"] == "" {
			t.Errorf("unexpected result: %+v", res)
		}
		if backend.callCount("CreateTransaction") != 0 {
			t.Error("nothing should be sent")
		}
	})

	t.Run("field validation", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		res := s.AddTransaction(context.Background(), models.TransactionInput{CategoryID: 2, Type: models.TransactionTypeExpense})
		if res.Success || res.ValidationErrors["amount"] == "" || res.ValidationErrors["description"] == "" {
			t.Errorf("unexpected result: %+v", res)
		}
		if backend.callCount("CreateTransaction") != 0 {
			t.Error("nothing should be sent")
		}
	})

	t.Run("no account selected", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		res := s.AddTransaction(context.Background(), models.TransactionInput{CategoryID: 2, Amount: decimal.NewFromInt(1), Type: models.TransactionTypeExpense, Description: "x"})
		if res.Success || !errors.Is(res.Err, apperrors.ErrNoAccountSelected) {
			t.Errorf("unexpected result: %+v", res)
		}
	})
}

func TestResultsDoNotShareState(t *testing.T) {
	s, _, _ := loggedInStore(t)
	ctx := context.Background()

	accounts := s.FetchAccounts(ctx, 0, true)
	categories := s.FetchCategories(ctx)
	txs := s.FetchTransactions(ctx, 0)
	report := s.FetchReports(ctx, 0)
	if !accounts.Success || !categories.Success || !txs.Success || !report.Success {
		t.Fatal("fetches failed")
	}
	if len(accounts.Value) == 0 || len(categories.Value) < 2 || len(txs.Value) == 0 || len(report.Value.Entries) == 0 {
		t.Fatal("expected loaded collections")
	}

	accounts.Value[0].Name = "changed"
	categories.Value[0].Name = "changed"
	*categories.Value[1].Budget = decimal.NewFromInt(1)
	txs.Value[0].Description = "changed"
	report.Value.Entries[0].CategoryName = "changed"

	snap := s.Snapshot()
	if snap.Accounts[0].Name != "Main" {
		t.Errorf("account changed through a result: %q", snap.Accounts[0].Name)
	}
	if snap.Categories[0].Name != "Salary" {
		t.Errorf("category changed through a result: %q", snap.Categories[0].Name)
	}
	if !snap.Categories[1].Budget.Equal(decimal.NewFromInt(800)) {
		t.Errorf("budget changed through a result: %s", snap.Categories[1].Budget)
	}
	if snap.Transactions[0].Description != "Salary" {
		t.Errorf("transaction changed through a result: %q", snap.Transactions[0].Description)
	}
	if snap.Reports.Entries[0].CategoryName == "changed" {
		t.Error("report changed through a result")
	}

	*snap.Categories[1].Budget = decimal.NewFromInt(2)
	if again := s.Snapshot(); !again.Categories[1].Budget.Equal(decimal.NewFromInt(800)) {
		t.Errorf("budget changed through a snapshot: %s", again.Categories[1].Budget)
	}
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	t.Run("update refetches", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		res := s.UpdateTransaction(context.Background(), 50, models.TransactionInput{
			CategoryID:  1,
			Amount:      decimal.NewFromInt(6000),
			Type:        models.TransactionTypeIncome,
			Description: "Raise",
		})
		if !res.Success || !res.Value.Amount.Equal(decimal.NewFromInt(6000)) {
			t.Fatalf("unexpected result: %+v", res)
		}
		account, _ := s.Snapshot().SelectedAccount()
		if !account.Balance.Equal(decimal.NewFromInt(6000)) {
			t.Errorf("expected balance 6000, got %s", account.Balance)
		}
	})

	t.Run("moving to another account refetches the source list", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		listCalls := backend.callCount("ListTransactions")

		res := s.UpdateTransaction(context.Background(), 50, models.TransactionInput{
			AccountID:   11,
			CategoryID:  1,
			Amount:      decimal.NewFromInt(5000),
			Type:        models.TransactionTypeIncome,
			Description: "Salary",
		})
		if !res.Success || res.Value.AccountID != 11 {
			t.Fatalf("unexpected result: %+v", res)
		}

		st := s.Snapshot()
		if st.SelectedAccountID != 10 || st.TransactionsAccountID != 10 {
			t.Errorf("selection should stay on account 10, got %d/%d", st.SelectedAccountID, st.TransactionsAccountID)
		}
		if len(st.Transactions) != 0 {
			t.Errorf("moved transaction still listed under account 10: %+v", st.Transactions)
		}
		if n := backend.callCount("ListTransactions") - listCalls; n != 1 {
			t.Errorf("expected one list refetch, got %d", n)
		}
		for _, acc := range st.Accounts {
			want := decimal.Zero
			if acc.ID == 11 {
				want = decimal.NewFromInt(5000)
			}
			if !acc.Balance.Equal(want) {
				t.Errorf("account %d: expected balance %s, got %s", acc.ID, want, acc.Balance)
			}
		}
	})

	t.Run("unknown transaction fails before any request", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		res := s.UpdateTransaction(context.Background(), 999, models.TransactionInput{})
		if res.Success || !errors.Is(res.Err, apperrors.ErrTransactionNotFound) {
			t.Errorf("unexpected result: %+v", res)
		}
		if res := s.DeleteTransaction(context.Background(), 999); res.Success {
			t.Error("expected delete of unknown transaction to fail")
		}
		if backend.callCount("UpdateTransaction")+backend.callCount("DeleteTransaction") != 0 {
			t.Error("nothing should be sent")
		}
	})

	t.Run("delete refetches", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		if res := s.DeleteTransaction(context.Background(), 50); !res.Success {
			t.Fatalf("unexpected failure: %s", res.Error)
		}
		st := s.Snapshot()
		account, _ := st.SelectedAccount()
		if len(st.Transactions) != 0 || !account.Balance.IsZero() {
			t.Errorf("unexpected state: %+v", st)
		}
	})
}

func TestAccountMutations(t *testing.T) {
	t.Run("deleting the selected account falls back to a remaining one", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		if res := s.DeleteAccount(context.Background(), 10); !res.Success {
			t.Fatalf("unexpected failure: %s", res.Error)
		}
		st := s.Snapshot()
		if st.SelectedAccountID != 11 {
			t.Errorf("expected account 11 selected, got %d", st.SelectedAccountID)
		}
		if st.TransactionsAccountID != 11 || len(st.Transactions) != 0 {
			t.Errorf("expected account 11's transactions, got %+v", st.Transactions)
		}
	})

	t.Run("deleting the last account clears the selection", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		s.DeleteAccount(context.Background(), 11)
		s.DeleteAccount(context.Background(), 10)
		st := s.Snapshot()
		if st.SelectedAccountID != 0 || len(st.Accounts) != 0 || len(st.Transactions) != 0 {
			t.Errorf("unexpected state: %+v", st)
		}
	})

	t.Run("add and update", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		added := s.AddAccount(context.Background(), models.AccountInput{Name: "Cash", Currency: "eur", Balance: decimal.NewFromInt(100)})
		if !added.Success || added.Value.Currency != "EUR" || !added.Value.Balance.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("unexpected result: %+v", added)
		}
		if len(s.Snapshot().Accounts) != 3 {
			t.Error("expected refetched accounts to include the new one")
		}

		updated := s.UpdateAccount(context.Background(), added.Value.ID, models.AccountInput{Name: "Wallet", Currency: "EUR"})
		if !updated.Success || updated.Value.Name != "Wallet" || !updated.Value.Balance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("unexpected result: %+v", updated)
		}
	})

	t.Run("invalid currency", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		res := s.AddAccount(context.Background(), models.AccountInput{Name: "X", Currency: "ZZZ"})
		if res.Success || res.ValidationErrors["currency"] == "" {
			t.Errorf("unexpected result: %+v", res)
		}
		if backend.callCount("CreateAccount") != 0 {
			t.Error("nothing should be sent")
		}
	})
}

func TestCategoryMutations(t *testing.T) {
	t.Run("resubmitting a fetched category is idempotent", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		before, _ := s.Snapshot().Category(2)
		res := s.UpdateCategory(context.Background(), 2, models.CategoryInput{
			Name: before.Name, Type: before.Type, Color: before.Color, Description: before.Description, Budget: before.Budget,
		})
		if !res.Success {
			t.Fatalf("unexpected failure: %s", res.Error)
		}
		after, _ := s.Snapshot().Category(2)
		if before.Budget == nil {
			t.Fatal("expected the seeded category to carry a budget")
		}
		if !sameCategory(before, after) {
			t.Errorf("category changed: %+v -> %+v", before, after)
		}
	})

	t.Run("add and delete refetch", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		res := s.AddCategory(context.Background(), models.CategoryInput{Name: "Rent", Type: models.TransactionTypeExpense, Color: "#123456"})
		if !res.Success || len(s.Snapshot().Categories) != 3 {
			t.Fatalf("unexpected result: %+v", res)
		}
		if del := s.DeleteCategory(context.Background(), res.Value.ID); !del.Success || len(s.Snapshot().Categories) != 2 {
			t.Errorf("unexpected delete result: %+v", del)
		}
		if backend.callCount("ListCategories") != 3 {
			t.Errorf("expected login fetch plus two refetches, got %d", backend.callCount("ListCategories"))
		}
	})

	t.Run("invalid color", func(t *testing.T) {
		s, _, _ := loggedInStore(t)
		res := s.AddCategory(context.Background(), models.CategoryInput{Name: "Rent", Type: models.TransactionTypeExpense, Color: "red"})
		if res.Success || res.ValidationErrors["color"] == "" {
			t.Errorf("unexpected result: %+v", res)
		}
	})
}

func TestErrorContainment(t *testing.T) {
	ops := []struct {
		method string
		run    func(s *Store) (bool, string)
	}{
		{"CreateTransaction", func(s *Store) (bool, string) {
			r := s.AddTransaction(context.Background(), models.TransactionInput{CategoryID: 2, Amount: decimal.NewFromInt(1), Type: models.TransactionTypeExpense, Description: "x"})
			return r.Success, r.Error
		}},
		{"UpdateTransaction", func(s *Store) (bool, string) {
			r := s.UpdateTransaction(context.Background(), 50, models.TransactionInput{CategoryID: 1, Amount: decimal.NewFromInt(1), Type: models.TransactionTypeIncome, Description: "x"})
			return r.Success, r.Error
		}},
		{"DeleteTransaction", func(s *Store) (bool, string) {
			r := s.DeleteTransaction(context.Background(), 50)
			return r.Success, r.Error
		}},
		{"CreateAccount", func(s *Store) (bool, string) {
			r := s.AddAccount(context.Background(), models.AccountInput{Name: "x", Currency: "PLN"})
			return r.Success, r.Error
		}},
		{"UpdateAccount", func(s *Store) (bool, string) {
			r := s.UpdateAccount(context.Background(), 10, models.AccountInput{Name: "x", Currency: "PLN"})
			return r.Success, r.Error
		}},
		{"DeleteAccount", func(s *Store) (bool, string) {
			r := s.DeleteAccount(context.Background(), 10)
			return r.Success, r.Error
		}},
		{"CreateCategory", func(s *Store) (bool, string) {
			r := s.AddCategory(context.Background(), models.CategoryInput{Name: "x", Type: models.TransactionTypeIncome})
			return r.Success, r.Error
		}},
		{"UpdateCategory", func(s *Store) (bool, string) {
			r := s.UpdateCategory(context.Background(), 1, models.CategoryInput{Name: "x", Type: models.TransactionTypeIncome})
			return r.Success, r.Error
		}},
		{"DeleteCategory", func(s *Store) (bool, string) {
			r := s.DeleteCategory(context.Background(), 1)
			return r.Success, r.Error
		}},
	}

	for _, op := range ops {
		t.Run(op.method, func(t *testing.T) {
			s, backend, _ := loggedInStore(t)
			before := s.Snapshot()
			backend.setFail(op.method, networkDown)

			ok, msg := op.run(s)
			if ok || msg == "" {
				t.Fatalf("expected failure with message, got ok=%v msg=%q", ok, msg)
			}
			after := s.Snapshot()
			if len(after.Accounts) != len(before.Accounts) || len(after.Transactions) != len(before.Transactions) ||
				len(after.Categories) != len(before.Categories) || after.SelectedAccountID != before.SelectedAccountID {
				t.Errorf("collections changed: before %+v, after %+v", before, after)
			}
			if after.Error != apperrors.ErrNetwork.Message {
				t.Errorf("expected network message in state, got %q", after.Error)
			}
			s.ClearError()
			if s.Snapshot().Error != "" {
				t.Error("ClearError should reset the message")
			}
		})
	}
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	t.Run("unauthorized during fetch", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		entered, release := backend.block("ListTransactions")

		done := make(chan struct{})
		go func() {
			defer close(done)
			s.FetchTransactions(context.Background(), 10)
		}()
		<-entered
		s.HandleUnauthorized()
		close(release)
		<-done

		st := s.Snapshot()
		if st.User != nil || len(st.Transactions) != 0 || st.Loading {
			t.Errorf("stale result applied: %+v", st)
		}
		if st.Error != apperrors.ErrUnauthorized.Message {
			t.Errorf("expected session-expired message, got %q", st.Error)
		}
	})

	t.Run("closed store ignores results", func(t *testing.T) {
		s, backend, _ := loggedInStore(t)
		backend.mu.Lock()
		backend.categories[3] = models.Category{ID: 3, Name: "Gifts", Type: models.TransactionTypeExpense}
		backend.mu.Unlock()

		s.Close()
		if res := s.FetchCategories(context.Background()); !res.Success || len(res.Value) != 3 {
			t.Errorf("operation should still report its result, got %+v", res)
		}
		if len(s.Snapshot().Categories) != 2 {
			t.Error("state must not change after Close")
		}
	})
}

func TestSubscribe(t *testing.T) {
	s, _, _ := loggedInStore(t)
	var got []State
	unsubscribe := s.Subscribe(func(st State) { got = append(got, st) })

	s.FetchCategories(context.Background())
	if len(got) != 1 || len(got[0].Categories) != 2 {
		t.Fatalf("expected one notification, got %d", len(got))
	}

	unsubscribe()
	s.FetchCategories(context.Background())
	if len(got) != 1 {
		t.Errorf("expected no notification after unsubscribe, got %d", len(got))
	}
}

func TestRestore(t *testing.T) {
	t.Run("resumes a persisted session", func(t *testing.T) {
		backend := newFakeBackend()
		backend.seed()
		storage := &session.MemoryStorage{}
		_ = storage.Save(session.Data{Token: "opaque", UserID: 1})
		s := New(backend, session.New(storage), WithLogger(zap.NewNop().Sugar()))

		res := s.Restore(context.Background())
		if !res.Success || res.Value.ID != 1 {
			t.Fatalf("unexpected result: %+v", res)
		}
		st := s.Snapshot()
		if len(st.Accounts) != 2 || len(st.Categories) != 2 || st.SelectedAccountID != 10 || len(st.Transactions) != 1 {
			t.Errorf("unexpected state: %+v", st)
		}
	})

	t.Run("no session", func(t *testing.T) {
		s, backend, _ := newTestStore(t)
		res := s.Restore(context.Background())
		if res.Success || !errors.Is(res.Err, apperrors.ErrNotLoggedIn) {
			t.Errorf("unexpected result: %+v", res)
		}
		if backend.callCount("GetUser") != 0 {
			t.Error("backend must not be called")
		}
	})

	t.Run("concurrent load failure", func(t *testing.T) {
		backend := newFakeBackend()
		backend.seed()
		backend.setFail("ListCategories", &client.StatusError{StatusCode: http.StatusInternalServerError})
		storage := &session.MemoryStorage{}
		_ = storage.Save(session.Data{Token: "opaque", UserID: 1})
		s := New(backend, session.New(storage), WithLogger(zap.NewNop().Sugar()))

		res := s.Restore(context.Background())
		if res.Success || res.Error != apperrors.ErrServer.Message {
			t.Errorf("unexpected result: %+v", res)
		}
		if u := s.Snapshot().User; u == nil || u.ID != 1 {
			t.Error("user should stay loaded")
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	s, _, _ := loggedInStore(t)
	res := s.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "Anna", Surname: "Kowalska", Login: "anna@example.com", Age: 30})
	if !res.Success || res.Value.Surname != "Kowalska" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if u := s.Snapshot().User; u.Surname != "Kowalska" || u.Age != 30 {
		t.Errorf("state not updated: %+v", u)
	}
}

func TestReports(t *testing.T) {
	s, _, _ := loggedInStore(t)
	before := s.Snapshot()

	res := s.FetchReports(context.Background(), 0)
	if !res.Success || len(res.Value.Entries) != 1 || res.Value.AccountID != 10 {
		t.Fatalf("unexpected result: %+v", res)
	}
	after := s.Snapshot()
	if after.Reports == nil || len(after.Transactions) != len(before.Transactions) {
		t.Errorf("unexpected state: %+v", after)
	}

	one := s.FetchReportByCategory(context.Background(), 10, 1)
	if !one.Success || one.Value.CategoryID != 1 || !one.Value.Entries[0].Amount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("unexpected result: %+v", one)
	}

	byCategory := s.FetchTransactionsByCategory(context.Background(), 10, 1)
	if !byCategory.Success || len(byCategory.Value) != 1 {
		t.Errorf("unexpected result: %+v", byCategory)
	}
}

func TestDerivedViews(t *testing.T) {
	s, _, _ := loggedInStore(t)
	for i, day := range []int{1, 5, 10} {
		res := s.AddTransaction(context.Background(), models.TransactionInput{
			CategoryID:  2,
			Amount:      decimal.NewFromInt(int64(10 * (i + 1))),
			Type:        models.TransactionTypeExpense,
			Date:        time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
			Description: "Lunch",
		})
		if !res.Success {
			t.Fatalf("add failed: %s", res.Error)
		}
	}

	monthly := s.MonthlyStats(time.Time{})
	if !monthly.Expense.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected 60 of June expenses, got %s", monthly.Expense)
	}

	breakdown := s.CategoryBreakdown()
	if len(breakdown) != 1 || breakdown[0].Name != "Food" {
		t.Errorf("unexpected breakdown: %+v", breakdown)
	}

	trend := s.MonthlyTrend(time.UTC)
	if len(trend) != 2 || !trend[1].Expense.Equal(decimal.NewFromInt(60)) {
		t.Errorf("unexpected trend: %+v", trend)
	}

	page := s.RecentTransactions(pagination.PageRequest{Page: 1, PageSize: 2})
	if page.TotalItems != 4 || len(page.Data) != 2 || page.Data[0].Date.Day() != 10 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func sameCategory(a, b models.Category) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Type != b.Type || a.Color != b.Color || a.Description != b.Description {
		return false
	}
	if (a.Budget == nil) != (b.Budget == nil) {
		return false
	}
	return a.Budget == nil || a.Budget.Equal(*b.Budget)
}
