package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"budgetplanner/internal/models"
	"budgetplanner/internal/pagination"
	"budgetplanner/internal/stats"
	"budgetplanner/internal/store"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	selected lipgloss.Style
	income   lipgloss.Style
	expense  lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	summary  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")),
		header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:     lipgloss.NewStyle().Padding(0, 1),
		selected: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		income:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		expense:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		summary:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

func (a *App) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(a.styles.muted).
		Headers(headers...)
}

// money colors an amount by sign.
func (a *App) money(d decimal.Decimal, currency string) string {
	s := a.fmt.Amount(d, currency)
	if d.IsNegative() {
		return a.styles.expense.Render(s)
	}
	return a.styles.income.Render(s)
}

// renderWarning shows an error recorded by a follow-up load.
func (a *App) renderWarning() {
	if msg := a.store.Snapshot().Error; msg != "" {
		fmt.Fprintln(a.out, a.styles.warning.Render(msg))
	}
}

func (a *App) renderAccounts(snap store.State) {
	if len(snap.Accounts) == 0 {
		fmt.Fprintln(a.out, a.styles.muted.Render("No accounts yet. Create one with budgetctl add-account."))
		return
	}

	rows := make([][]string, 0, len(snap.Accounts))
	selectedRow := -1
	for i, acc := range snap.Accounts {
		marker := ""
		if acc.ID == snap.SelectedAccountID {
			marker = "*"
			selectedRow = i
		}
		rows = append(rows, []string{marker, strconv.FormatInt(acc.ID, 10), acc.Name, acc.Currency, a.money(acc.Balance, acc.Currency)})
	}

	t := a.newTable("", "ID", "Account", "Currency", "Balance").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return a.styles.header
			case selectedRow:
				return a.styles.selected
			}
			return a.styles.cell
		})
	fmt.Fprintln(a.out, a.styles.title.Render("Accounts"))
	fmt.Fprintln(a.out, t.Render())
}

func (a *App) renderTransactions(snap store.State, page pagination.PageResponse[models.Transaction]) {
	account, _ := snap.SelectedAccount()
	if page.TotalItems == 0 {
		fmt.Fprintln(a.out, a.styles.muted.Render("No transactions on "+account.Name))
		return
	}

	rows := make([][]string, 0, len(page.Data))
	for _, tx := range page.Data {
		category := stats.UncategorizedName
		if c, ok := snap.Category(tx.CategoryID); ok {
			category = c.Name
		}
		amount := a.fmt.Signed(tx, account.Currency)
		if tx.Type == models.TransactionTypeExpense {
			amount = a.styles.expense.Render(amount)
		} else {
			amount = a.styles.income.Render(amount)
		}
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			a.fmt.Date(tx.Date),
			category,
			tx.Description,
			amount,
		})
	}

	t := a.newTable("ID", "Date", "Category", "Description", "Amount").
		Rows(rows...).
		StyleFunc(a.plainStyle)
	fmt.Fprintln(a.out, a.styles.title.Render("Transactions on "+account.Name))
	fmt.Fprintln(a.out, t.Render())
	fmt.Fprintln(a.out, a.styles.muted.Render(fmt.Sprintf("Page %d of %d (%d transactions)", page.Page, page.TotalPages, page.TotalItems)))
}

func (a *App) renderCategories(snap store.State) {
	if len(snap.Categories) == 0 {
		fmt.Fprintln(a.out, a.styles.muted.Render("No categories yet. Create one with budgetctl add-category."))
		return
	}

	rows := make([][]string, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		name := c.Name
		if c.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■ ") + name
		}
		budget := "-"
		if c.Budget != nil {
			budget = a.fmt.Number(*c.Budget)
		}
		rows = append(rows, []string{strconv.FormatInt(c.ID, 10), name, a.fmt.Type(c.Type), budget})
	}

	t := a.newTable("ID", "Category", "Type", "Budget").
		Rows(rows...).
		StyleFunc(a.plainStyle)
	fmt.Fprintln(a.out, a.styles.title.Render("Categories"))
	fmt.Fprintln(a.out, t.Render())
}

func (a *App) renderReport(snap store.State, report models.Report, currency string) {
	account, _ := findAccount(snap, report.AccountID)
	if len(report.Entries) == 0 {
		fmt.Fprintln(a.out, a.styles.muted.Render("No report lines for "+account.Name))
		return
	}

	rows := make([][]string, 0, len(report.Entries)+1)
	for _, e := range report.Entries {
		rows = append(rows, []string{e.CategoryName, a.fmt.Amount(e.Amount, currency)})
	}
	rows = append(rows, []string{"Total", a.fmt.Amount(stats.ReportTotal(report), currency)})

	last := len(rows) - 1
	t := a.newTable("Category", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == last {
				return a.styles.header
			}
			return a.plainStyle(row, col)
		})
	fmt.Fprintln(a.out, a.styles.title.Render("Report for "+account.Name))
	fmt.Fprintln(a.out, t.Render())
}

func (a *App) renderSummary(account models.Account, totals stats.Totals, ref time.Time, breakdown []stats.CategorySlice) {
	lines := []string{
		a.styles.title.Render(account.Name + " · " + a.fmt.Month(ref)),
		"Balance  " + a.money(account.Balance, account.Currency),
		"Income   " + a.styles.income.Render(a.fmt.Amount(totals.Income, account.Currency)),
		"Expenses " + a.styles.expense.Render(a.fmt.Amount(totals.Expense, account.Currency)),
		"Net      " + a.money(totals.Net, account.Currency),
	}

	var expenses decimal.Decimal
	for _, s := range breakdown {
		expenses = expenses.Add(s.Total)
	}
	if len(breakdown) > 0 {
		lines = append(lines, "", a.styles.title.Render("Expenses by category"))
		for _, s := range breakdown {
			share := s.Total.Div(expenses).InexactFloat64()
			lines = append(lines, fmt.Sprintf("%-16s %s  %s", s.Name, a.fmt.Amount(s.Total, account.Currency), a.styles.muted.Render(a.fmt.Percent(share))))
		}
	}

	fmt.Fprintln(a.out, a.styles.summary.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (a *App) plainStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return a.styles.header
	}
	return a.styles.cell
}
