package cli

import (
	"context"
)

const dashboardRecentCount = 5

// DashboardView shows the user's most recent expenses and a quick summary
func (a *App) DashboardView(ctx context.Context) {
	if !a.enter(RequireAuth) {
		return
	}

	a.println("Loading dashboard...")
	page, err := a.client.ListExpenses(ctx, dashboardRecentCount, 0)
	if err != nil {
		a.println("Could not load expenses:", err.Error())
		return
	}

	a.printf("\n%s's dashboard\n", a.session.User().Name)
	a.printf("Recorded expenses: %d\n", page.Total)

	if len(page.Expenses) == 0 {
		a.println("No expenses yet. Use 'add' to record your first one.")
		return
	}

	a.println("\nMost recent:")
	for _, expense := range page.Expenses {
		category := ""
		if expense.Category != nil {
			category = expense.Category.Name
		}
		a.printf("  %s  %-30s %-18s %10s\n",
			expense.ExpenseDate.Format("2006-01-02"),
			truncate(expense.Name, 30),
			category,
			expense.Total.StringFixed(2))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
