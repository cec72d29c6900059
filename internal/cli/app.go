// Package cli implements budgetctl, a terminal front end over the store. Each
// invocation restores the persisted session, runs one command and renders the
// resulting state.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"budgetplanner/internal/format"
	"budgetplanner/internal/store"
)

// ErrUsage is returned for unknown commands and bad arguments.
var ErrUsage = errors.New("usage error")

type command struct {
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"login":           {"login <login> [password]", (*App).login},
	"logout":          {"logout", (*App).logout},
	"register":        {"register -name N -login L -password P [-surname S] [-age A]", (*App).register},
	"accounts":        {"accounts", (*App).accounts},
	"add-account":     {"add-account -name N [-currency PLN] [-balance 0] [-description D]", (*App).addAccount},
	"select":          {"select <accountId>", (*App).selectAccount},
	"transactions":    {"transactions [-category ID] [-page N] [-size N]", (*App).transactions},
	"add-transaction": {"add-transaction -type expense|income -amount X -category ID -desc D [-date YYYY-MM-DD] [-notes N]", (*App).addTransaction},
	"categories":      {"categories", (*App).categories},
	"add-category":    {"add-category -name N -type expense|income [-color #RRGGBB] [-budget X]", (*App).addCategory},
	"report":          {"report [-category ID] [--png DIR]", (*App).report},
	"summary":         {"summary [-month YYYY-MM] [--png DIR]", (*App).summary},
}

// App runs budgetctl commands against a store.
type App struct {
	store     *store.Store
	selection Selection
	out       io.Writer
	fmt       *format.Formatter
	styles    styles
	now       func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the reference time used by summary.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New creates an App writing to out.
func New(st *store.Store, selection Selection, out io.Writer, f *format.Formatter, opts ...Option) *App {
	a := &App{
		store:     st,
		selection: selection,
		out:       out,
		fmt:       f,
		styles:    newStyles(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.Usage()
		if len(args) == 0 {
			return fmt.Errorf("%w: no command given", ErrUsage)
		}
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.Usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return cmd.run(a, ctx, args[1:])
}

// Usage lists every command.
func (a *App) Usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, a.styles.title.Render("budgetctl <command> [flags]"))
	for _, name := range names {
		fmt.Fprintln(a.out, "  "+commands[name].usage)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// resume restores the persisted session and applies the saved account selection.
func (a *App) resume(ctx context.Context) error {
	if res := a.store.Restore(ctx); !res.Success {
		return failure(res)
	}
	id, err := a.selection.Load()
	if err != nil || id == 0 {
		return nil
	}
	snap := a.store.Snapshot()
	if snap.SelectedAccountID == id {
		return nil
	}
	if _, ok := findAccount(snap, id); !ok {
		return nil
	}
	if res := a.store.SelectAccount(ctx, id); !res.Success {
		return failure(res)
	}
	return nil
}

// failure turns a failed result into an error carrying its message and any
// field messages.
func failure[T any](res store.Result[T]) error {
	if len(res.ValidationErrors) == 0 {
		return errors.New(res.Error)
	}
	fields := make([]string, 0, len(res.ValidationErrors))
	for field, msg := range res.ValidationErrors {
		fields = append(fields, field+": "+msg)
	}
	sort.Strings(fields)
	return fmt.Errorf("%s (%s)", res.Error, strings.Join(fields, "; "))
}
