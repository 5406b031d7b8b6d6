package cli

import (
	"context"
	"strconv"
	"strings"

	"minflow/internal/models"
)

const expensePageSize = 20

// ExpensesView lists the user's expenses a page at a time and supports
// confirmed deletion. Deleting mutates the local list only after the server
// confirms.
func (a *App) ExpensesView(ctx context.Context) {
	if !a.enter(RequireAuth) {
		return
	}

	offset := 0
	a.println("Loading expenses...")
	page, err := a.client.ListExpenses(ctx, expensePageSize, offset)
	if err != nil {
		a.println("Could not load expenses:", err.Error())
		return
	}
	expenses := page.Expenses
	total := page.Total

	for {
		if len(expenses) == 0 && total == 0 {
			a.println("No expenses recorded yet.")
			return
		}

		a.printf("\nExpenses %d-%d of %d\n", offset+1, offset+len(expenses), total)
		renderExpenseTable(a, expenses)
		a.println("\n(n)ext page, (p)revious page, delete <id>, (b)ack")

		choice, err := a.promptString("expenses")
		if err != nil {
			return
		}
		fields := strings.Fields(choice)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "b", "back":
			return
		case "n", "next":
			if int64(offset+expensePageSize) >= total {
				a.println("Already on the last page.")
				continue
			}
			offset += expensePageSize
		case "p", "prev", "previous":
			if offset == 0 {
				a.println("Already on the first page.")
				continue
			}
			offset -= expensePageSize
		case "delete":
			if len(fields) < 2 {
				a.println("Usage: delete <id>")
				continue
			}
			id, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				a.println("Not a valid expense id.")
				continue
			}
			if deleted := a.deleteExpense(ctx, uint(id)); deleted {
				expenses = removeExpense(expenses, uint(id))
				total--
			}
			continue
		default:
			a.println("Unknown choice:", fields[0])
			continue
		}

		page, err := a.client.ListExpenses(ctx, expensePageSize, offset)
		if err != nil {
			a.println("Could not load expenses:", err.Error())
			return
		}
		expenses = page.Expenses
		total = page.Total
	}
}

// deleteExpense asks for confirmation before issuing the request. No
// confirmation means no request.
func (a *App) deleteExpense(ctx context.Context, id uint) bool {
	if !a.confirm("Delete this expense permanently?") {
		a.println("Cancelled.")
		return false
	}
	if err := a.client.DeleteExpense(ctx, id); err != nil {
		a.println("Delete failed:", err.Error())
		return false
	}
	a.println("Expense deleted.")
	return true
}

func removeExpense(expenses []models.Expense, id uint) []models.Expense {
	filtered := expenses[:0]
	for _, expense := range expenses {
		if expense.ID != id {
			filtered = append(filtered, expense)
		}
	}
	return filtered
}

func renderExpenseTable(a *App, expenses []models.Expense) {
	a.printf("  %-5s %-12s %-30s %-18s %10s\n", "ID", "Date", "Name", "Category", "Total")
	for _, expense := range expenses {
		category := ""
		if expense.Category != nil {
			category = expense.Category.Name
		}
		a.printf("  %-5d %-12s %-30s %-18s %10s\n",
			expense.ID,
			expense.ExpenseDate.Format("2006-01-02"),
			truncate(expense.Name, 30),
			category,
			expense.Total.StringFixed(2))
	}
}
