package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"minflow/internal/client/extract"
	"minflow/internal/dto"
	"minflow/internal/models"

	"github.com/shopspring/decimal"
)

// addExpenseState is the add-expense view's internal state machine
type addExpenseState int

const (
	stateManualEntry addExpenseState = iota
	stateAIModal
	stateExtractedReview
	stateDone
)

// AddExpenseView runs the add-expense flow: manual entry by default, an AI
// extraction prompt reachable from it, and a review list for extracted
// drafts. Successful extraction moves to review; cancelling review returns
// to manual entry with the drafts discarded.
func (a *App) AddExpenseView(ctx context.Context) {
	if !a.enter(RequireAuth) {
		return
	}

	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		a.println("Could not load categories:", err.Error())
		return
	}

	state := stateManualEntry
	var drafts []extract.Draft

	for state != stateDone {
		switch state {
		case stateManualEntry:
			state = a.manualEntry(ctx, &categories)
		case stateAIModal:
			var extracted []extract.Draft
			state, extracted = a.aiExtraction(ctx, categories)
			if state == stateExtractedReview {
				drafts = extracted
			}
		case stateExtractedReview:
			state = a.extractedReview(ctx, drafts, categories)
			drafts = nil
		}
	}
}

// manualEntry collects one expense by hand. Returns the next state.
func (a *App) manualEntry(ctx context.Context, categories *[]models.Category) addExpenseState {
	a.println("\nAdd expense: (m)anual entry, (x) extract from text, (b)ack")
	choice, err := a.promptString("add")
	if err != nil {
		return stateDone
	}

	switch choice {
	case "b", "back", "":
		return stateDone
	case "x", "extract":
		return stateAIModal
	case "m", "manual":
	default:
		a.println("Unknown choice:", choice)
		return stateManualEntry
	}

	name, err := a.promptRequired("Name")
	if err != nil {
		return stateDone
	}

	categoryID, err := a.chooseCategory(ctx, categories)
	if err != nil {
		return stateDone
	}

	unit, err := a.promptDecimal("Quantity", decimal.NewFromInt(1))
	if err != nil {
		return stateDone
	}
	perUnitCost, err := a.promptDecimal("Cost per unit", decimal.Zero)
	if err != nil {
		return stateDone
	}

	// Display-only preview; the server computes the persisted total
	preview := unit.Mul(perUnitCost).Round(2)
	a.printf("Preview total: %s\n", preview.StringFixed(2))

	if !a.confirm("Record this expense?") {
		a.println("Discarded.")
		return stateManualEntry
	}

	expense, err := a.client.CreateExpense(ctx, &dto.CreateExpenseRequest{
		Name:        name,
		CategoryID:  categoryID,
		Unit:        unit,
		PerUnitCost: perUnitCost,
		ExpenseDate: time.Now(),
	})
	if err != nil {
		a.println("Could not record expense:", err.Error())
		return stateManualEntry
	}
	a.printf("Recorded. Total: %s\n", expense.Total.StringFixed(2))
	return stateManualEntry
}

// chooseCategory lists the known categories and reads a choice. Entering
// "new" creates a category inline, appends it locally, and preselects it
// without refetching the list.
func (a *App) chooseCategory(ctx context.Context, categories *[]models.Category) (uint, error) {
	a.println("Categories:")
	for _, category := range *categories {
		a.printf("  %d. %s\n", category.ID, category.Name)
	}
	a.println("Enter a category id, or 'new' to create one.")

	for {
		choice, err := a.promptRequired("Category")
		if err != nil {
			return 0, err
		}

		if choice == "new" {
			name, err := a.promptRequired("New category name")
			if err != nil {
				return 0, err
			}
			category, err := a.client.CreateCategory(ctx, name)
			if err != nil {
				a.println("Could not create category:", err.Error())
				continue
			}
			*categories = append(*categories, *category)
			a.printf("Created and selected '%s'.\n", category.Name)
			return category.ID, nil
		}

		id, err := strconv.ParseUint(choice, 10, 32)
		if err != nil {
			a.println("Enter a category id or 'new'.")
			continue
		}
		for _, category := range *categories {
			if category.ID == uint(id) {
				return category.ID, nil
			}
		}
		a.println("No such category.")
	}
}

// aiExtraction prompts for a paragraph and sends it to the extraction
// proxy. An empty or failed result keeps this state with an error message;
// a non-empty result moves to review.
func (a *App) aiExtraction(ctx context.Context, categories []models.Category) (addExpenseState, []extract.Draft) {
	a.println("\nDescribe your expenses in plain text (empty line to cancel):")
	paragraph, err := a.promptString("text")
	if err != nil {
		return stateDone, nil
	}
	if paragraph == "" {
		return stateManualEntry, nil
	}

	a.println("Extracting...")
	resp, err := a.client.Extract(ctx, extract.BuildRequest(paragraph, categories))
	if err != nil {
		a.println("Extraction failed:", err.Error())
		return stateAIModal, nil
	}
	if resp.OutputData == nil || len(resp.OutputData.Expenses) == 0 {
		a.println("No expenses found in that text. Try rephrasing.")
		return stateAIModal, nil
	}

	drafts := make([]extract.Draft, 0, len(resp.OutputData.Expenses))
	for _, item := range resp.OutputData.Expenses {
		drafts = append(drafts, extract.DraftFromExtracted(item, categories))
	}
	return stateExtractedReview, drafts
}

// extractedReview lets the user edit or remove drafts before submitting
// them all. Cancelling discards the drafts and returns to manual entry.
func (a *App) extractedReview(ctx context.Context, drafts []extract.Draft, categories []models.Category) addExpenseState {
	for {
		if len(drafts) == 0 {
			a.println("All drafts removed.")
			return stateManualEntry
		}

		a.printf("\nExtracted drafts (%d):\n", len(drafts))
		for i, draft := range drafts {
			a.printf("  %d. %-30s category %-3d %s\n",
				i+1, truncate(draft.Name, 30), draft.CategoryID, draft.PreviewTotal().StringFixed(2))
		}
		a.println("edit <n>, remove <n>, (s)ubmit all, (c)ancel")

		choice, err := a.promptString("review")
		if err != nil {
			return stateDone
		}
		fields := strings.Fields(choice)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "c", "cancel":
			a.println("Drafts discarded.")
			return stateManualEntry
		case "s", "submit":
			result := extract.SubmitAll(ctx, a.client, drafts)
			if result.SuccessCount > 0 {
				a.printf("Recorded %d expense(s).\n", result.SuccessCount)
			}
			if result.ErrorCount > 0 {
				a.printf("%d expense(s) failed:\n", result.ErrorCount)
				for _, submitErr := range result.Errors {
					a.println("  -", submitErr.Error())
				}
			}
			if result.ShouldNavigate() {
				return stateManualEntry
			}
			// Partial or total failure: stay so the user can retry
			continue
		case "remove":
			index, ok := parseDraftIndex(fields, len(drafts))
			if !ok {
				a.println("Usage: remove <n>")
				continue
			}
			drafts = append(drafts[:index], drafts[index+1:]...)
		case "edit":
			index, ok := parseDraftIndex(fields, len(drafts))
			if !ok {
				a.println("Usage: edit <n>")
				continue
			}
			edited, err := a.editDraft(drafts[index], categories)
			if err != nil {
				return stateDone
			}
			drafts[index] = edited
		default:
			a.println("Unknown choice:", fields[0])
		}
	}
}

func parseDraftIndex(fields []string, count int) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n - 1, true
}

// editDraft re-prompts each field with the current value as the default
func (a *App) editDraft(draft extract.Draft, categories []models.Category) (extract.Draft, error) {
	name, err := a.promptString("Name [" + draft.Name + "]")
	if err != nil {
		return draft, err
	}
	if name != "" {
		draft.Name = name
	}

	a.println("Categories:")
	for _, category := range categories {
		a.printf("  %d. %s\n", category.ID, category.Name)
	}
	categoryInput, err := a.promptString("Category id [" + strconv.FormatUint(uint64(draft.CategoryID), 10) + "]")
	if err != nil {
		return draft, err
	}
	if categoryInput != "" {
		if id, parseErr := strconv.ParseUint(categoryInput, 10, 32); parseErr == nil && id > 0 {
			draft.CategoryID = uint(id)
		} else {
			a.println("Keeping previous category.")
		}
	}

	unit, err := a.promptDecimal("Quantity", draft.Unit)
	if err != nil {
		return draft, err
	}
	draft.Unit = unit

	cost, err := a.promptDecimal("Cost per unit", draft.PerUnitCost)
	if err != nil {
		return draft, err
	}
	draft.PerUnitCost = cost

	return draft, nil
}
