package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"minflow/internal/client/api"
	"minflow/internal/client/extract"
	"minflow/internal/dto"
)

// AnalyticsView fetches the user's expense date range once on entry, then
// generates snapshots only on explicit request. A 404 from the date-range
// endpoint is the empty-data case, distinct from a failure.
func (a *App) AnalyticsView(ctx context.Context) {
	if !a.enter(RequireAuth) {
		return
	}

	a.println("Loading date range...")
	dateRange, err := a.client.DateRange(ctx)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			a.println("No expenses recorded yet, nothing to analyze.")
			return
		}
		a.println("Could not load date range:", err.Error())
		return
	}

	earliest := dateRange.Start.Format("2006-01-02")
	latest := dateRange.End.Format("2006-01-02")
	a.printf("Your expenses span %s to %s.\n", earliest, latest)

	for {
		start, err := a.promptString("Start date (YYYY-MM-DD, empty for earliest)")
		if err != nil {
			return
		}
		if start == "" {
			start = earliest
		}
		end, err := a.promptString("End date (YYYY-MM-DD, empty for latest)")
		if err != nil {
			return
		}
		if end == "" {
			end = latest
		}
		if _, parseErr := time.Parse("2006-01-02", start); parseErr != nil {
			a.println("Start date must be YYYY-MM-DD.")
			continue
		}
		if _, parseErr := time.Parse("2006-01-02", end); parseErr != nil {
			a.println("End date must be YYYY-MM-DD.")
			continue
		}

		if !a.confirm("Generate analytics for this range?") {
			return
		}

		result, err := a.client.Analytics(ctx, start, end)
		if err != nil {
			a.println("Analytics failed:", err.Error())
			continue
		}
		a.renderAnalytics(result)

		if !a.confirm("Another range?") {
			return
		}
	}
}

func (a *App) renderAnalytics(result *dto.AnalyticsResult) {
	a.printf("\nTotal spent:   %s\n", result.TotalExpenses.StringFixed(2))
	a.printf("Expenses:      %d\n", result.ExpenseCount)
	a.printf("Daily average: %s\n", result.AverageDailySpend.StringFixed(2))

	if len(result.ByCategory) > 0 {
		a.println("\nBy category:")
		for _, category := range result.ByCategory {
			percentage := extract.CategoryPercentage(category.Total, result.TotalExpenses)
			a.printf("  %-18s %10s  %5s%%  (%d)\n",
				category.CategoryName,
				category.Total.StringFixed(2),
				percentage.StringFixed(1),
				category.Count)
		}
	}

	if len(result.DailyExpenses) > 0 {
		a.println("\nDaily:")
		for _, day := range result.DailyExpenses {
			a.printf("  %s  %10s\n", day.Date, day.Total.StringFixed(2))
		}
	}
}
