package store

import (
	"context"
	"strings"

	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"
	"budgetplanner/internal/validator"
)

// FetchAccounts replaces the account collection. A zero userID means the
// signed-in user. When the selection has to change (nothing selected yet, or
// the selected account is gone) the first account is selected and, unless
// skipTransactions, its transactions are fetched.
func (s *Store) FetchAccounts(ctx context.Context, userID int64, skipTransactions bool) Result[[]models.Account] {
	gen := s.currentGeneration()
	if userID == 0 {
		userID = s.sessionUserID()
	}
	if userID == 0 {
		return fail[[]models.Account](s, gen, "fetch accounts", apperrors.ErrNotLoggedIn)
	}
	return s.loadAccounts(ctx, gen, userID, skipTransactions)
}

func (s *Store) loadAccounts(ctx context.Context, gen uint64, userID int64, skipTransactions bool) Result[[]models.Account] {
	accounts, err := s.backend.ListAccounts(ctx, userID)
	if err != nil {
		return fail[[]models.Account](s, gen, "fetch accounts", err)
	}

	var selected int64
	changed := false
	s.commit(gen, func(st *State) {
		st.Accounts = append([]models.Account(nil), accounts...)
		prev := st.SelectedAccountID
		st.SelectedAccountID = pickSelection(accounts, prev)
		selected = st.SelectedAccountID
		changed = selected != prev
		if selected == 0 {
			st.Transactions = nil
			st.TransactionsAccountID = 0
		}
		if st.Reports != nil {
			if _, ok := findAccount(accounts, st.Reports.AccountID); !ok {
				st.Reports = nil
			}
		}
	})

	if changed && selected != 0 && !skipTransactions {
		s.loadTransactions(ctx, gen, selected, true)
	}
	return succeed(accounts)
}

// pickSelection keeps current when it is still present, otherwise falls back
// to the first account, or to none.
func pickSelection(accounts []models.Account, current int64) int64 {
	if current != 0 {
		if _, ok := findAccount(accounts, current); ok {
			return current
		}
	}
	if len(accounts) > 0 {
		return accounts[0].ID
	}
	return 0
}

// SelectAccount makes id the selected account and loads its transactions.
func (s *Store) SelectAccount(ctx context.Context, id int64) Result[[]models.Transaction] {
	gen := s.currentGeneration()
	if _, ok := findAccount(s.Snapshot().Accounts, id); !ok {
		return fail[[]models.Transaction](s, gen, "select account", apperrors.ErrAccountNotFound)
	}
	s.commit(gen, func(st *State) { st.SelectedAccountID = id })
	return s.loadTransactions(ctx, gen, id, true)
}

// AddAccount creates an account for the signed-in user and re-reads the
// account collection.
func (s *Store) AddAccount(ctx context.Context, in models.AccountInput) Result[models.Account] {
	gen := s.currentGeneration()
	userID := s.sessionUserID()
	if userID == 0 {
		return fail[models.Account](s, gen, "add account", apperrors.ErrNotLoggedIn)
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if fields := validator.Fields(in); fields != nil {
		return fail[models.Account](s, gen, "add account", invalid(fields))
	}

	created, err := s.backend.CreateAccount(ctx, userID, in)
	if err != nil {
		return fail[models.Account](s, gen, "add account", err)
	}

	refetch := s.loadAccounts(ctx, gen, userID, false)
	return succeed(pickResult(refetch.Value, created))
}

// UpdateAccount changes an account's name, currency and description. The
// balance stays whatever the backend computes.
func (s *Store) UpdateAccount(ctx context.Context, id int64, in models.AccountInput) Result[models.Account] {
	gen := s.currentGeneration()
	existing, ok := findAccount(s.Snapshot().Accounts, id)
	if !ok {
		return fail[models.Account](s, gen, "update account", apperrors.ErrAccountNotFound)
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if fields := validator.Fields(in); fields != nil {
		return fail[models.Account](s, gen, "update account", invalid(fields))
	}

	updated := existing
	updated.Name = in.Name
	updated.Currency = in.Currency
	updated.Description = in.Description
	if _, err := s.backend.UpdateAccount(ctx, updated); err != nil {
		return fail[models.Account](s, gen, "update account", err)
	}

	refetch := s.loadAccounts(ctx, gen, existing.UserID, false)
	return succeed(pickResult(refetch.Value, updated))
}

// DeleteAccount removes an account. When it was selected, the first remaining
// account becomes selected and its transactions are loaded.
func (s *Store) DeleteAccount(ctx context.Context, id int64) Result[struct{}] {
	gen := s.currentGeneration()
	existing, ok := findAccount(s.Snapshot().Accounts, id)
	if !ok {
		return fail[struct{}](s, gen, "delete account", apperrors.ErrAccountNotFound)
	}

	if err := s.backend.DeleteAccount(ctx, id); err != nil {
		return fail[struct{}](s, gen, "delete account", err)
	}

	userID := existing.UserID
	if userID == 0 {
		userID = s.sessionUserID()
	}
	s.loadAccounts(ctx, gen, userID, false)
	return succeed(struct{}{})
}

// RefreshAccountBalance re-reads one account, picking up the balance the
// backend recomputed.
func (s *Store) RefreshAccountBalance(ctx context.Context, id int64) Result[models.Account] {
	return s.refreshAccount(ctx, s.currentGeneration(), id)
}

func (s *Store) refreshAccount(ctx context.Context, gen uint64, id int64) Result[models.Account] {
	userID := s.sessionUserID()
	if userID == 0 {
		return fail[models.Account](s, gen, "refresh account", apperrors.ErrNotLoggedIn)
	}
	account, err := s.backend.GetAccount(ctx, userID, id)
	if err != nil {
		return fail[models.Account](s, gen, "refresh account", err)
	}
	s.commit(gen, func(st *State) {
		next := make([]models.Account, len(st.Accounts))
		copy(next, st.Accounts)
		for i := range next {
			if next[i].ID == id {
				next[i] = account
			}
		}
		st.Accounts = next
	})
	return succeed(account)
}

// pickResult prefers the re-read copy of an entity over the write response.
func pickResult(accounts []models.Account, written models.Account) models.Account {
	if a, ok := findAccount(accounts, written.ID); ok && written.ID != 0 {
		return a
	}
	return written
}
