// Package extract implements the client side of AI expense extraction: the
// category label mapping from free-text labels to real category IDs, the
// conversion of extracted items into editable drafts, and the sequential
// bulk submission with its partial-success accounting.
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"

	"github.com/shopspring/decimal"
)

// FallbackCategoryID is the id of the seeded "Other" category, used when a
// label matches nothing and no category named "Other" exists either
const FallbackCategoryID uint = 10

// synonyms maps common AI-returned labels to the seeded category names.
// Unrecognized labels map to themselves.
var synonyms = map[string]string{
	"groceries":     models.CategoryFoodDining,
	"dining":        models.CategoryFoodDining,
	"food":          models.CategoryFoodDining,
	"utilities":     models.CategoryBillsUtilities,
	"bills":         models.CategoryBillsUtilities,
	"personal care": models.CategoryPersonalCare,
}

// MapCategoryLabel resolves a free-text category label to one of the user's
// category IDs. Lowercases the label, applies the synonym table, matches the
// user's categories case-insensitively, then falls back to the category
// named "Other", then to FallbackCategoryID. Never fails.
func MapCategoryLabel(label string, categories []models.Category) uint {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if mapped, ok := synonyms[normalized]; ok {
		normalized = strings.ToLower(mapped)
	}

	for _, category := range categories {
		if strings.ToLower(category.Name) == normalized {
			return category.ID
		}
	}
	for _, category := range categories {
		if category.Name == models.CategoryOther {
			return category.ID
		}
	}
	return FallbackCategoryID
}

// Draft is a locally held, not-yet-persisted expense pending user review.
// Editable until submitted; discarded on cancel.
type Draft struct {
	Name        string
	CategoryID  uint
	Unit        decimal.Decimal
	PerUnitCost decimal.Decimal
	ExpenseDate time.Time
}

// PreviewTotal is the display-only derived total. Never submitted; the
// server computes the authoritative total from unit and per-unit cost.
func (d Draft) PreviewTotal() decimal.Decimal {
	return d.Unit.Mul(d.PerUnitCost).Round(2)
}

// DraftFromExtracted converts one extracted item to a draft: unit fixed at
// 1, per-unit cost set to the extracted amount, so the amount is treated as
// a flat total. A parseable extracted date is kept, otherwise today.
func DraftFromExtracted(item dto.ExtractedExpense, categories []models.Category) Draft {
	name := strings.TrimSpace(item.Description)
	if name == "" && item.Merchant != nil {
		name = strings.TrimSpace(*item.Merchant)
	}
	if name == "" {
		name = "Extracted expense"
	}

	expenseDate := time.Now()
	if item.Date != nil {
		if parsed, err := time.Parse("2006-01-02", *item.Date); err == nil {
			expenseDate = parsed
		}
	}

	return Draft{
		Name:        name,
		CategoryID:  MapCategoryLabel(item.Category, categories),
		Unit:        decimal.NewFromInt(1),
		PerUnitCost: decimal.NewFromFloat(item.Amount),
		ExpenseDate: expenseDate,
	}
}

// BuildRequest assembles the extraction request body: the raw paragraph plus
// the user's categories re-keyed as synthetic identifiers with lower-cased
// names, as the extraction service expects
func BuildRequest(paragraph string, categories []models.Category) *dto.ExtractRequest {
	extractCategories := make([]dto.ExtractCategory, 0, len(categories))
	for i, category := range categories {
		extractCategories = append(extractCategories, dto.ExtractCategory{
			CategoryID: fmt.Sprintf("cat_%d", i+1),
			Name:       strings.ToLower(category.Name),
			IsDefault:  category.IsDefault,
		})
	}
	return &dto.ExtractRequest{
		InputData: dto.ExtractInputData{
			Paragraph:  paragraph,
			Categories: extractCategories,
		},
		ConversationHistory: []interface{}{},
	}
}

// ExpenseSubmitter is the slice of the API client the bulk submitter needs
type ExpenseSubmitter interface {
	CreateExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*models.Expense, error)
}

// BulkResult is the outcome of a bulk submission. Partial success is a
// normal outcome, not an error state.
type BulkResult struct {
	SuccessCount int
	ErrorCount   int
	Errors       []error
}

// ShouldNavigate reports whether the review view should be left: only when
// nothing failed and at least one draft was persisted
func (r BulkResult) ShouldNavigate() bool {
	return r.ErrorCount == 0 && r.SuccessCount > 0
}

// SubmitAll submits each draft as an independent sequential request, in
// order, never aborting on individual failure. No rollback: drafts already
// persisted stay persisted when a later one fails.
func SubmitAll(ctx context.Context, submitter ExpenseSubmitter, drafts []Draft) BulkResult {
	var result BulkResult
	for _, draft := range drafts {
		req := &dto.CreateExpenseRequest{
			Name:        draft.Name,
			CategoryID:  draft.CategoryID,
			Unit:        draft.Unit,
			PerUnitCost: draft.PerUnitCost,
			ExpenseDate: draft.ExpenseDate,
		}
		if _, err := submitter.CreateExpense(ctx, req); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, err)
			continue
		}
		result.SuccessCount++
	}
	return result
}

// CategoryPercentage computes a category's share of total spending for
// display. Returns 0 when the total is zero or negative rather than
// dividing by zero.
func CategoryPercentage(categoryTotal, totalExpenses decimal.Decimal) decimal.Decimal {
	if !totalExpenses.IsPositive() {
		return decimal.Zero
	}
	return categoryTotal.Div(totalExpenses).Mul(decimal.NewFromInt(100)).Round(1)
}
