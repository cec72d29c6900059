package store

import (
	"context"
	"fmt"

	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/models"
	"budgetplanner/internal/validator"

	"golang.org/x/sync/errgroup"
)

// Login authenticates, persists the session and loads the user's data: accounts
// (without their transactions), then categories, then the transactions of the
// automatically selected first account. A failure in the follow-up loads is
// recorded in State.Error but does not fail the login.
func (s *Store) Login(ctx context.Context, creds models.Credentials) Result[models.User] {
	if fields := validator.Fields(creds); fields != nil {
		return fail[models.User](s, s.currentGeneration(), "login", invalid(fields))
	}

	res, err := s.backend.Login(ctx, creds)
	if err != nil {
		// A 401 here also runs the unauthorized handler, which starts a new
		// generation; report against the current one.
		return fail[models.User](s, s.currentGeneration(), "login", classifyLogin(err))
	}
	if res.Token == "" {
		return fail[models.User](s, s.currentGeneration(), "login",
			apperrors.WithMessage(apperrors.ErrServer, "Login response did not include a token"))
	}
	if err := s.session.Set(res.Token, res.User.ID); err != nil {
		s.log.Warnw("failed to persist session", "error", err)
	}

	user := res.User
	gen := s.reset(func(st *State) { st.User = &user })
	s.log.Infow("logged in", "user_id", user.ID)

	s.loadAccounts(ctx, gen, user.ID, true)
	s.loadCategories(ctx, gen)
	if id := s.Snapshot().SelectedAccountID; id != 0 {
		s.loadTransactions(ctx, gen, id, true)
	}
	return succeed(user)
}

// Register creates a user and then logs in with the same credentials. When the
// automatic login fails the registration still succeeds, with
// RequiresManualLogin set.
func (s *Store) Register(ctx context.Context, reg models.Registration) Result[models.User] {
	created, err := s.backend.CreateUser(ctx, reg)
	if err != nil {
		return fail[models.User](s, s.currentGeneration(), "register", err)
	}

	login := s.Login(ctx, models.Credentials{Login: reg.Login, Password: reg.Password})
	if !login.Success {
		return Result[models.User]{
			Value:               created,
			Success:             true,
			Error:               login.Error,
			RequiresManualLogin: true,
		}
	}
	return login
}

// Logout forgets the session and the user's data without calling the backend.
// Results of requests still in flight are discarded.
func (s *Store) Logout() {
	if err := s.session.Clear(); err != nil {
		s.log.Warnw("failed to clear session", "error", err)
	}
	s.reset(func(*State) {})
}

// HandleUnauthorized reacts to a 401 from any request: the client has already
// cleared the session, so the store drops the user's data and tells the user
// to sign in again.
func (s *Store) HandleUnauthorized() {
	s.reset(func(st *State) { st.Error = apperrors.ErrUnauthorized.Message })
}

// Restore resumes a persisted session: the user first, then accounts and
// categories concurrently, then the selected account's transactions.
func (s *Store) Restore(ctx context.Context) Result[models.User] {
	gen := s.currentGeneration()
	if err := s.session.Restore(); err != nil {
		s.log.Warnw("failed to read persisted session", "error", err)
	}
	userID := s.session.UserID()
	if userID == 0 {
		return fail[models.User](s, gen, "restore", apperrors.ErrNotLoggedIn)
	}

	user, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		return fail[models.User](s, s.currentGeneration(), "restore", err)
	}
	gen = s.reset(func(st *State) { st.User = &user })

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if res := s.loadAccounts(gctx, gen, userID, true); !res.Success {
			return res.Err
		}
		return nil
	})
	g.Go(func() error {
		if res := s.loadCategories(gctx, gen); !res.Success {
			return res.Err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		res := fail[models.User](s, gen, "restore", err)
		res.Value = user
		return res
	}

	if id := s.Snapshot().SelectedAccountID; id != 0 {
		s.loadTransactions(ctx, gen, id, true)
	}
	return succeed(user)
}

// UpdateProfile changes the signed-in user's details and re-reads them.
func (s *Store) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) Result[models.User] {
	gen := s.currentGeneration()
	userID := s.sessionUserID()
	if userID == 0 {
		return fail[models.User](s, gen, "update profile", apperrors.ErrNotLoggedIn)
	}
	if fields := validator.Fields(upd); fields != nil {
		return fail[models.User](s, gen, "update profile", invalid(fields))
	}

	if _, err := s.backend.UpdateUser(ctx, userID, upd); err != nil {
		return fail[models.User](s, gen, "update profile", err)
	}
	user, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		return fail[models.User](s, gen, "update profile", fmt.Errorf("re-reading profile: %w", err))
	}
	s.commit(gen, func(st *State) { st.User = &user })
	return succeed(user)
}
