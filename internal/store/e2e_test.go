package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"budgetplanner/internal/api"
	"budgetplanner/internal/client"
	"budgetplanner/internal/config"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"
	"budgetplanner/internal/server/servertest"
	"budgetplanner/internal/session"
	"budgetplanner/internal/store"
)

func newHTTPStore(t *testing.T, b *servertest.Backend, storage session.Storage) *store.Store {
	t.Helper()
	sess := session.New(storage)
	log := zap.NewNop().Sugar()
	c := client.New(b.URL, sess, client.WithTimeout(5*time.Second), client.WithLogger(log))
	st := store.New(api.NewHTTPBackend(c, config.DefaultEndpoints()), sess, store.WithLogger(log))
	c.OnUnauthorized(st.HandleUnauthorized)
	t.Cleanup(st.Close)
	return st
}

func TestStore_AgainstDevBackend(t *testing.T) {
	b := servertest.New(t)
	storage := &session.MemoryStorage{}
	st := newHTTPStore(t, b, storage)
	ctx := context.Background()

	res := st.Login(ctx, models.Credentials{Login: servertest.Login, Password: servertest.Password})
	if !res.Success {
		t.Fatalf("login failed: %s", res.Error)
	}

	snap := st.Snapshot()
	if len(snap.Accounts) != 2 || snap.SelectedAccountID != b.Main.ID {
		t.Fatalf("expected Main selected out of 2 accounts, got %d selected of %d", snap.SelectedAccountID, len(snap.Accounts))
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("expected the seeded salary, got %d transactions", len(snap.Transactions))
	}
	if !st.Balance().Equal(decimal.NewFromInt(5100)) {
		t.Errorf("expected balance 5100, got %s", st.Balance())
	}

	t.Run("add transaction refreshes balance", func(t *testing.T) {
		res := st.AddTransaction(ctx, models.TransactionInput{
			CategoryID:  b.Food.ID,
			Amount:      decimal.NewFromInt(350),
			Type:        models.TransactionTypeExpense,
			Date:        time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			Description: "Groceries",
		})
		if !res.Success {
			t.Fatalf("add failed: %s %v", res.Error, res.ValidationErrors)
		}
		account, _ := st.Snapshot().SelectedAccount()
		if !account.Balance.Equal(decimal.NewFromInt(4750)) {
			t.Errorf("expected server balance 4750, got %s", account.Balance)
		}
		if len(st.Snapshot().Transactions) != 2 {
			t.Errorf("expected 2 transactions after refetch")
		}
	})

	t.Run("mismatched category is rejected before sending", func(t *testing.T) {
		res := st.AddTransaction(ctx, models.TransactionInput{
			CategoryID:  b.Salary.ID,
			Amount:      decimal.NewFromInt(10),
			Type:        models.TransactionTypeExpense,
			Description: "Oops",
		})
		if res.Success {
			t.Fatal("expected failure")
		}
		if !errors.Is(res.Err, apperrors.ErrCategoryTypeMismatch) || res.ValidationErrors["categoryId"] == "" {
			t.Errorf("expected a categoryId type mismatch, got %v %v", res.Err, res.ValidationErrors)
		}
	})

	t.Run("reports", func(t *testing.T) {
		res := st.FetchReports(ctx, 0)
		if !res.Success || len(res.Value.Entries) != 2 {
			t.Fatalf("expected 2 report lines, got %+v (%s)", res.Value, res.Error)
		}
		res = st.FetchReportByCategory(ctx, 0, b.Food.ID)
		if !res.Success || len(res.Value.Entries) != 1 || !res.Value.Entries[0].Amount.Abs().Equal(decimal.NewFromInt(350)) {
			t.Errorf("expected one 350 line, got %+v (%s)", res.Value, res.Error)
		}
	})

	t.Run("category in use cannot be deleted", func(t *testing.T) {
		res := st.DeleteCategory(ctx, b.Food.ID)
		if res.Success || !errors.Is(res.Err, apperrors.ErrConflict) {
			t.Errorf("expected conflict, got %+v", res)
		}
		if _, ok := st.Snapshot().Category(b.Food.ID); !ok {
			t.Error("expected category to stay loaded")
		}
	})

	t.Run("account lifecycle", func(t *testing.T) {
		res := st.AddAccount(ctx, models.AccountInput{Name: "Travel", Currency: "EUR", Balance: decimal.NewFromInt(250)})
		if !res.Success {
			t.Fatalf("add account failed: %s", res.Error)
		}
		if !res.Value.Balance.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected opening balance 250, got %s", res.Value.Balance)
		}
		if len(st.Snapshot().Accounts) != 3 {
			t.Errorf("expected 3 accounts")
		}
		if del := st.DeleteAccount(ctx, res.Value.ID); !del.Success {
			t.Fatalf("delete account failed: %s", del.Error)
		}
		if len(st.Snapshot().Accounts) != 2 {
			t.Errorf("expected 2 accounts after delete")
		}
	})

	t.Run("restore from persisted session", func(t *testing.T) {
		restored := newHTTPStore(t, b, storage)
		res := restored.Restore(ctx)
		if !res.Success || res.Value.ID != b.User.ID {
			t.Fatalf("restore failed: %+v", res)
		}
		if got := restored.Snapshot(); len(got.Accounts) != 2 || len(got.Transactions) != 2 {
			t.Errorf("expected accounts and transactions restored, got %d and %d", len(got.Accounts), len(got.Transactions))
		}
	})

	t.Run("logout", func(t *testing.T) {
		st.Logout()
		if st.Snapshot().User != nil {
			t.Error("expected state cleared")
		}
		if res := newHTTPStore(t, b, storage).Restore(ctx); res.Success {
			t.Error("expected restore to fail after logout")
		}
	})
}

func TestStore_WrongPassword(t *testing.T) {
	b := servertest.New(t)
	st := newHTTPStore(t, b, &session.MemoryStorage{})

	res := st.Login(context.Background(), models.Credentials{Login: servertest.Login, Password: "nope"})
	if res.Success || !errors.Is(res.Err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials, got %+v", res)
	}
}
