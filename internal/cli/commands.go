package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"budgetplanner/internal/charts"
	"budgetplanner/internal/models"
	"budgetplanner/internal/pagination"
	"budgetplanner/internal/stats"
	"budgetplanner/internal/store"
)

// PasswordEnv supplies the login password when it is not given as an argument.
const PasswordEnv = "BUDGET_PASSWORD"

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: login <login> [password]", ErrUsage)
	}
	password := os.Getenv(PasswordEnv)
	if len(args) > 1 {
		password = args[1]
	}

	res := a.store.Login(ctx, models.Credentials{Login: args[0], Password: password})
	if !res.Success {
		return failure(res)
	}
	if err := a.selection.Save(0); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.styles.income.Render("Signed in as "+res.Value.FullName()))
	a.renderAccounts(a.store.Snapshot())
	a.renderWarning()
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	a.store.Logout()
	if err := a.selection.Save(0); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	var reg models.Registration
	fs.StringVar(&reg.Name, "name", "", "first name")
	fs.StringVar(&reg.Surname, "surname", "", "last name")
	fs.StringVar(&reg.Login, "login", "", "login")
	fs.StringVar(&reg.Password, "password", "", "password")
	fs.IntVar(&reg.Age, "age", 0, "age")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	res := a.store.Register(ctx, reg)
	if !res.Success {
		return failure(res)
	}
	if res.RequiresManualLogin {
		fmt.Fprintln(a.out, a.styles.warning.Render("Account created; sign in with budgetctl login ("+res.Error+")"))
		return nil
	}
	fmt.Fprintln(a.out, a.styles.income.Render("Registered and signed in as "+res.Value.FullName()))
	return nil
}

func (a *App) accounts(ctx context.Context, _ []string) error {
	if err := a.resume(ctx); err != nil {
		return err
	}
	a.renderAccounts(a.store.Snapshot())
	a.renderWarning()
	return nil
}

func (a *App) addAccount(ctx context.Context, args []string) error {
	fs := a.flags("add-account")
	var in models.AccountInput
	var balance string
	fs.StringVar(&in.Name, "name", "", "account name")
	fs.StringVar(&in.Currency, "currency", "PLN", "ISO 4217 currency code")
	fs.StringVar(&balance, "balance", "0", "opening balance")
	fs.StringVar(&in.Description, "description", "", "description")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("%w: invalid balance %q", ErrUsage, balance)
	}
	in.Balance = amount

	if err := a.resume(ctx); err != nil {
		return err
	}
	res := a.store.AddAccount(ctx, in)
	if !res.Success {
		return failure(res)
	}
	fmt.Fprintf(a.out, "Created account #%d %s\n", res.Value.ID, res.Value.Name)
	a.renderAccounts(a.store.Snapshot())
	return nil
}

func (a *App) selectAccount(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: select <accountId>", ErrUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid account id %q", ErrUsage, args[0])
	}

	if err := a.resume(ctx); err != nil {
		return err
	}
	res := a.store.SelectAccount(ctx, id)
	if !res.Success {
		return failure(res)
	}
	if err := a.selection.Save(id); err != nil {
		return err
	}
	snap := a.store.Snapshot()
	a.renderAccounts(snap)
	a.renderTransactions(snap, a.store.RecentTransactions(pagination.PageRequest{Page: 1}))
	return nil
}

func (a *App) transactions(ctx context.Context, args []string) error {
	fs := a.flags("transactions")
	categoryID := fs.Int64("category", 0, "only this category")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", pagination.DefaultPageSize, "page size")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := a.resume(ctx); err != nil {
		return err
	}
	req := pagination.PageRequest{Page: *page, PageSize: *size}
	if *categoryID != 0 {
		res := a.store.FetchTransactionsByCategory(ctx, 0, *categoryID)
		if !res.Success {
			return failure(res)
		}
		a.renderTransactions(a.store.Snapshot(), pagination.Slice(res.Value, req))
		return nil
	}
	a.renderTransactions(a.store.Snapshot(), a.store.RecentTransactions(req))
	return nil
}

func (a *App) addTransaction(ctx context.Context, args []string) error {
	fs := a.flags("add-transaction")
	var in models.TransactionInput
	var txType, amount, date string
	fs.StringVar(&txType, "type", string(models.TransactionTypeExpense), "income or expense")
	fs.StringVar(&amount, "amount", "", "amount, always positive")
	fs.Int64Var(&in.CategoryID, "category", 0, "category id")
	fs.StringVar(&in.Description, "desc", "", "description")
	fs.StringVar(&in.Notes, "notes", "", "notes")
	fs.StringVar(&date, "date", "", "date as YYYY-MM-DD, today when empty")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	in.Type = models.TransactionType(strings.ToLower(txType))
	if amount != "" {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("%w: invalid amount %q", ErrUsage, amount)
		}
		in.Amount = d
	}
	if date != "" {
		t, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return fmt.Errorf("%w: invalid date %q", ErrUsage, date)
		}
		in.Date = t
	}

	if err := a.resume(ctx); err != nil {
		return err
	}
	res := a.store.AddTransaction(ctx, in)
	if !res.Success {
		return failure(res)
	}
	snap := a.store.Snapshot()
	account, _ := snap.SelectedAccount()
	fmt.Fprintf(a.out, "Recorded %s %s\n", a.fmt.Signed(res.Value, account.Currency), res.Value.Description)
	a.renderAccounts(snap)
	return nil
}

func (a *App) categories(ctx context.Context, _ []string) error {
	if err := a.resume(ctx); err != nil {
		return err
	}
	a.renderCategories(a.store.Snapshot())
	return nil
}

func (a *App) addCategory(ctx context.Context, args []string) error {
	fs := a.flags("add-category")
	var in models.CategoryInput
	var txType, budget string
	fs.StringVar(&in.Name, "name", "", "category name")
	fs.StringVar(&txType, "type", string(models.TransactionTypeExpense), "income or expense")
	fs.StringVar(&in.Color, "color", "", "hex color like #FF6B6B")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.StringVar(&budget, "budget", "", "monthly budget")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	in.Type = models.TransactionType(strings.ToLower(txType))
	if budget != "" {
		d, err := decimal.NewFromString(budget)
		if err != nil {
			return fmt.Errorf("%w: invalid budget %q", ErrUsage, budget)
		}
		in.Budget = &d
	}

	if err := a.resume(ctx); err != nil {
		return err
	}
	res := a.store.AddCategory(ctx, in)
	if !res.Success {
		return failure(res)
	}
	fmt.Fprintf(a.out, "Created category #%d %s\n", res.Value.ID, res.Value.Name)
	a.renderCategories(a.store.Snapshot())
	return nil
}

func (a *App) report(ctx context.Context, args []string) error {
	fs := a.flags("report")
	categoryID := fs.Int64("category", 0, "only this category")
	pngDir := fs.String("png", "", "also write a pie chart PNG into this directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := a.resume(ctx); err != nil {
		return err
	}
	var res store.Result[models.Report]
	if *categoryID != 0 {
		res = a.store.FetchReportByCategory(ctx, 0, *categoryID)
	} else {
		res = a.store.FetchReports(ctx, 0)
	}
	if !res.Success {
		return failure(res)
	}

	snap := a.store.Snapshot()
	account, _ := snap.SelectedAccount()
	a.renderReport(snap, res.Value, account.Currency)

	if *pngDir != "" {
		pie, err := charts.NewGenerator(account.Currency).RenderCategoryPie(reportSlices(snap, res.Value))
		if err != nil {
			return fmt.Errorf("render report chart: %w", err)
		}
		return a.writePNG(*pngDir, fmt.Sprintf("report-%d.png", res.Value.AccountID), pie)
	}
	return nil
}

func (a *App) summary(ctx context.Context, args []string) error {
	fs := a.flags("summary")
	month := fs.String("month", "", "month as YYYY-MM, current month when empty")
	pngDir := fs.String("png", "", "also write breakdown and trend PNGs into this directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	ref := a.now()
	if *month != "" {
		t, err := time.Parse("2006-01", *month)
		if err != nil {
			return fmt.Errorf("%w: invalid month %q", ErrUsage, *month)
		}
		ref = t
	}

	if err := a.resume(ctx); err != nil {
		return err
	}
	snap := a.store.Snapshot()
	account, ok := snap.SelectedAccount()
	if !ok {
		fmt.Fprintln(a.out, a.styles.muted.Render("No accounts yet. Create one with budgetctl add-account."))
		return nil
	}

	breakdown := a.store.CategoryBreakdown()
	trend := a.store.MonthlyTrend(ref.Location())
	a.renderSummary(account, a.store.MonthlyStats(ref), ref, breakdown)
	a.renderWarning()

	if *pngDir == "" {
		return nil
	}
	gen := charts.NewGenerator(account.Currency)
	pie, err := gen.RenderCategoryPie(breakdown)
	if err != nil {
		return fmt.Errorf("render breakdown chart: %w", err)
	}
	if err := a.writePNG(*pngDir, "breakdown.png", pie); err != nil {
		return err
	}
	line, err := gen.RenderTrendLine(trend)
	if err != nil {
		return fmt.Errorf("render trend chart: %w", err)
	}
	return a.writePNG(*pngDir, "trend.png", line)
}

// writePNG skips empty charts.
func (a *App) writePNG(dir, name string, data []byte) error {
	if len(data) == 0 {
		fmt.Fprintln(a.out, a.styles.muted.Render("Nothing to chart for "+name))
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Wrote "+path)
	return nil
}

// reportSlices keeps the expense lines of a report, colored like their categories.
func reportSlices(snap store.State, report models.Report) []stats.CategorySlice {
	var slices []stats.CategorySlice
	for _, e := range report.Entries {
		category, ok := snap.Category(e.CategoryID)
		if ok && category.Type != models.TransactionTypeExpense {
			continue
		}
		if e.Amount.IsZero() {
			continue
		}
		name := e.CategoryName
		if name == "" {
			name = category.Name
		}
		slices = append(slices, stats.CategorySlice{
			CategoryID: e.CategoryID,
			Name:       name,
			Color:      category.Color,
			Total:      e.Amount.Abs(),
		})
	}
	return slices
}

func findAccount(snap store.State, id int64) (models.Account, bool) {
	for _, acc := range snap.Accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return models.Account{}, false
}
