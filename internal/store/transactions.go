package store

import (
	"context"
	"fmt"

	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"
	"budgetplanner/internal/pagination"
	"budgetplanner/internal/stats"
	"budgetplanner/internal/validator"
)

// FetchTransactions replaces the transaction collection with accountID's
// transactions (zero means the selected account). While one fetch is in
// flight a second call is dropped: it returns an empty successful Result
// without contacting the backend.
func (s *Store) FetchTransactions(ctx context.Context, accountID int64) Result[[]models.Transaction] {
	gen := s.currentGeneration()
	if accountID == 0 {
		accountID = s.Snapshot().SelectedAccountID
	}
	if accountID == 0 {
		return fail[[]models.Transaction](s, gen, "fetch transactions", apperrors.ErrNoAccountSelected)
	}
	return s.loadTransactions(ctx, gen, accountID, false)
}

// loadTransactions fetches under txSem. With wait it queues behind a fetch in
// flight; without it, it gives up immediately.
func (s *Store) loadTransactions(ctx context.Context, gen uint64, accountID int64, wait bool) Result[[]models.Transaction] {
	if wait {
		select {
		case s.txSem <- struct{}{}:
		case <-ctx.Done():
			return fail[[]models.Transaction](s, gen, "fetch transactions", ctx.Err())
		}
	} else {
		select {
		case s.txSem <- struct{}{}:
		default:
			s.log.Debugw("transaction fetch already in flight, dropping", "account_id", accountID)
			return succeed[[]models.Transaction](nil)
		}
	}
	defer func() { <-s.txSem }()

	s.commit(gen, func(st *State) { st.Loading = true })

	txs, err := s.backend.ListTransactions(ctx, accountID)
	if err != nil {
		return fail[[]models.Transaction](s, gen, "fetch transactions", err, func(st *State) { st.Loading = false })
	}
	s.commit(gen, func(st *State) {
		st.Transactions = append([]models.Transaction(nil), txs...)
		st.TransactionsAccountID = accountID
		st.Loading = false
	})
	return succeed(txs)
}

// FetchTransactionsByCategory returns one category's transactions on an
// account, most recent first. The store's state is not touched.
func (s *Store) FetchTransactionsByCategory(ctx context.Context, accountID, categoryID int64) Result[[]models.Transaction] {
	gen := s.currentGeneration()
	if accountID == 0 {
		accountID = s.Snapshot().SelectedAccountID
	}
	if accountID == 0 {
		return fail[[]models.Transaction](s, gen, "fetch transactions by category", apperrors.ErrNoAccountSelected)
	}
	txs, err := s.backend.ListTransactionsByCategory(ctx, accountID, categoryID)
	if err != nil {
		return fail[[]models.Transaction](s, gen, "fetch transactions by category", err)
	}
	return succeed(stats.SortByDateDesc(txs))
}

// RecentTransactions pages the loaded transactions, most recent first.
func (s *Store) RecentTransactions(req pagination.PageRequest) pagination.PageResponse[models.Transaction] {
	return pagination.Slice(s.SortedTransactions(), req)
}

// AddTransaction records a transaction, then re-reads the transaction list and
// the account's balance. A zero AccountID means the selected account and a
// zero Date means now.
func (s *Store) AddTransaction(ctx context.Context, in models.TransactionInput) Result[models.Transaction] {
	gen := s.currentGeneration()
	tx, err := s.prepareTransaction(in, 0)
	if err != nil {
		return fail[models.Transaction](s, gen, "add transaction", err)
	}

	created, err := s.backend.CreateTransaction(ctx, tx)
	if err != nil {
		return fail[models.Transaction](s, gen, "add transaction", err)
	}

	s.refetchAfterTransactionChange(ctx, gen, tx.AccountID)
	return succeed(s.pickTransaction(created, tx))
}

// UpdateTransaction replaces a loaded transaction's fields. A zero AccountID
// keeps the transaction's current account.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, in models.TransactionInput) Result[models.Transaction] {
	gen := s.currentGeneration()
	existing, ok := findTransaction(s.Snapshot().Transactions, id)
	if !ok {
		return fail[models.Transaction](s, gen, "update transaction", apperrors.ErrTransactionNotFound)
	}
	if in.AccountID == 0 {
		in.AccountID = existing.AccountID
	}
	if in.Date.IsZero() {
		in.Date = existing.Date
	}
	tx, err := s.prepareTransaction(in, id)
	if err != nil {
		return fail[models.Transaction](s, gen, "update transaction", err)
	}

	updated, err := s.backend.UpdateTransaction(ctx, tx)
	if err != nil {
		return fail[models.Transaction](s, gen, "update transaction", err)
	}

	s.refetchAfterTransactionChange(ctx, gen, tx.AccountID)
	if existing.AccountID != tx.AccountID {
		// Moved: the source account loses it from its list and its balance.
		s.refetchAfterTransactionChange(ctx, gen, existing.AccountID)
	}
	return succeed(s.pickTransaction(updated, tx))
}

// DeleteTransaction removes a loaded transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) Result[struct{}] {
	gen := s.currentGeneration()
	existing, ok := findTransaction(s.Snapshot().Transactions, id)
	if !ok {
		return fail[struct{}](s, gen, "delete transaction", apperrors.ErrTransactionNotFound)
	}

	if err := s.backend.DeleteTransaction(ctx, id); err != nil {
		return fail[struct{}](s, gen, "delete transaction", err)
	}

	s.refetchAfterTransactionChange(ctx, gen, existing.AccountID)
	return succeed(struct{}{})
}

// prepareTransaction validates in against local state and builds the
// transaction to send. Nothing is sent when this fails.
func (s *Store) prepareTransaction(in models.TransactionInput, id int64) (models.Transaction, error) {
	snap := s.Snapshot()
	if in.AccountID == 0 {
		in.AccountID = snap.SelectedAccountID
	}
	if in.AccountID == 0 {
		return models.Transaction{}, apperrors.ErrNoAccountSelected
	}
	if _, ok := findAccount(snap.Accounts, in.AccountID); !ok {
		return models.Transaction{}, apperrors.ErrAccountNotFound
	}
	if fields := validator.Fields(in); fields != nil {
		return models.Transaction{}, invalid(fields)
	}

	category, ok := findCategory(snap.Categories, in.CategoryID)
	if !ok {
		return models.Transaction{}, apperrors.WithFields(apperrors.ErrCategoryNotFound,
			map[string]string{"categoryId": "does not exist"})
	}
	if category.Type != in.Type {
		return models.Transaction{}, apperrors.WithFields(apperrors.ErrCategoryTypeMismatch,
			map[string]string{"categoryId": fmt.Sprintf("must be an %s category", in.Type)})
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	return models.Transaction{
		ID:          id,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        date,
		Description: in.Description,
		Notes:       in.Notes,
	}, nil
}

// refetchAfterTransactionChange re-reads the account's balance and, when its
// transactions are the ones loaded or it is selected, the transaction list.
// Failures are recorded in State.Error; the mutation itself already succeeded.
func (s *Store) refetchAfterTransactionChange(ctx context.Context, gen uint64, accountID int64) {
	snap := s.Snapshot()
	if accountID == snap.SelectedAccountID || accountID == snap.TransactionsAccountID {
		s.loadTransactions(ctx, gen, accountID, true)
	}
	s.refreshAccount(ctx, gen, accountID)
}

// pickTransaction prefers the re-read copy over the write response, and the
// write response over what was sent.
func (s *Store) pickTransaction(written, sent models.Transaction) models.Transaction {
	if written.ID != 0 {
		if t, ok := findTransaction(s.Snapshot().Transactions, written.ID); ok {
			return t
		}
		return written
	}
	return sent
}
