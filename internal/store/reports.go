package store

import (
	"context"

	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"
)

// FetchReports loads the all-category report of an account (zero means the
// selected account) into State.Reports. Nothing else changes.
func (s *Store) FetchReports(ctx context.Context, accountID int64) Result[models.Report] {
	gen := s.currentGeneration()
	accountID, ok := s.reportAccount(accountID)
	if !ok {
		return fail[models.Report](s, gen, "fetch reports", apperrors.ErrNoAccountSelected)
	}
	report, err := s.backend.CategoryReport(ctx, accountID)
	if err != nil {
		return fail[models.Report](s, gen, "fetch reports", err)
	}
	s.commit(gen, func(st *State) {
		stored := copyReport(report)
		st.Reports = &stored
	})
	return succeed(report)
}

// FetchReportByCategory loads one category's report of an account into
// State.Reports.
func (s *Store) FetchReportByCategory(ctx context.Context, accountID, categoryID int64) Result[models.Report] {
	gen := s.currentGeneration()
	accountID, ok := s.reportAccount(accountID)
	if !ok {
		return fail[models.Report](s, gen, "fetch report by category", apperrors.ErrNoAccountSelected)
	}
	report, err := s.backend.CategoryReportFor(ctx, accountID, categoryID)
	if err != nil {
		return fail[models.Report](s, gen, "fetch report by category", err)
	}
	s.commit(gen, func(st *State) {
		stored := copyReport(report)
		st.Reports = &stored
	})
	return succeed(report)
}

func (s *Store) reportAccount(accountID int64) (int64, bool) {
	if accountID == 0 {
		accountID = s.Snapshot().SelectedAccountID
	}
	return accountID, accountID != 0
}
