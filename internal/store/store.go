// Package store is the single owner of the signed-in user's budget data. It
// sequences dependent fetches, performs mutations against the backend and
// re-reads the affected collections afterwards, and exposes synchronous
// snapshots plus change notifications to any number of consumers.
//
// Every operation returns a Result instead of an error: expected failures
// (bad credentials, validation, server or network trouble) are translated to
// a user-facing message, recorded in State.Error and reported to the caller.
package store

import (
	"sync"
	"time"

	"budgetplanner/internal/api"
	"budgetplanner/internal/logger"
	"budgetplanner/internal/models"
	"budgetplanner/internal/session"

	"go.uber.org/zap"
)

// State is a point-in-time copy of everything the store owns.
type State struct {
	User                  *models.User
	Accounts              []models.Account
	Transactions          []models.Transaction
	TransactionsAccountID int64
	Categories            []models.Category
	SelectedAccountID     int64
	Reports               *models.Report
	Loading               bool
	Error                 string
}

// SelectedAccount returns the selected account, if any.
func (s State) SelectedAccount() (models.Account, bool) {
	if s.SelectedAccountID == 0 {
		return models.Account{}, false
	}
	return findAccount(s.Accounts, s.SelectedAccountID)
}

// Category looks up a loaded category.
func (s State) Category(id int64) (models.Category, bool) {
	return findCategory(s.Categories, id)
}

func (s State) clone() State {
	c := s
	c.Accounts = append([]models.Account(nil), s.Accounts...)
	c.Transactions = append([]models.Transaction(nil), s.Transactions...)
	c.Categories = copyCategories(s.Categories)
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	if s.Reports != nil {
		r := copyReport(*s.Reports)
		c.Reports = &r
	}
	return c
}

// copyCategories copies the slice and every budget it points to.
func copyCategories(in []models.Category) []models.Category {
	if in == nil {
		return nil
	}
	out := append([]models.Category(nil), in...)
	for i := range out {
		if out[i].Budget != nil {
			b := *out[i].Budget
			out[i].Budget = &b
		}
	}
	return out
}

func copyReport(r models.Report) models.Report {
	r.Entries = append([]models.ReportEntry(nil), r.Entries...)
	return r
}

// Store is safe for concurrent use.
type Store struct {
	backend api.Backend
	session *session.Session
	log     *zap.SugaredLogger
	now     func() time.Time

	mu           sync.RWMutex
	state        State
	generation   uint64
	closed       bool
	listeners    map[int]func(State)
	nextListener int

	// txSem admits one transaction-list fetch at a time.
	txSem chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, e.g. for default transaction dates in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a Store talking to backend and keeping credentials in sess.
func New(backend api.Backend, sess *session.Session, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		session:   sess,
		now:       time.Now,
		listeners: make(map[int]func(State)),
		txSem:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("store")
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change and must not block.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close detaches the store from its consumers. Requests still in flight are
// not aborted, but their results are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.listeners = make(map[int]func(State))
	s.mu.Unlock()
}

// ClearError resets the last error message.
func (s *Store) ClearError() {
	s.commit(s.currentGeneration(), func(st *State) { st.Error = "" })
}

// currentGeneration identifies the session an operation starts in. Results
// carrying an older generation arrived after a logout and are dropped.
func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// commit applies fn to the state unless the store was closed or the session
// changed since gen was taken, then notifies listeners. It reports whether fn
// was applied.
func (s *Store) commit(gen uint64, fn func(*State)) bool {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return false
	}
	fn(&s.state)
	snap := s.state.clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return true
}

// reset starts a new session generation with fn applied to a cleared state.
// Categories are global and survive.
func (s *Store) reset(fn func(*State)) uint64 {
	s.mu.Lock()
	if s.closed {
		gen := s.generation
		s.mu.Unlock()
		return gen
	}
	s.generation++
	gen := s.generation
	s.state = State{Categories: s.state.Categories}
	s.mu.Unlock()

	s.commit(gen, fn)
	return gen
}

func (s *Store) sessionUserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User != nil {
		return s.state.User.ID
	}
	return s.session.UserID()
}

func findAccount(accounts []models.Account, id int64) (models.Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Account{}, false
}

func findCategory(categories []models.Category, id int64) (models.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

func findTransaction(txs []models.Transaction, id int64) (models.Transaction, bool) {
	for _, t := range txs {
		if t.ID == id {
			return t, true
		}
	}
	return models.Transaction{}, false
}
