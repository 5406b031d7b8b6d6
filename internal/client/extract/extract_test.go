package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExtractTestSuite struct {
	suite.Suite
	categories []models.Category
}

func (s *ExtractTestSuite) SetupTest() {
	s.categories = []models.Category{
		{ID: 1, Name: models.CategoryFoodDining, IsDefault: true},
		{ID: 5, Name: models.CategoryBillsUtilities, IsDefault: true},
		{ID: 8, Name: models.CategoryPersonalCare, IsDefault: true},
		{ID: 10, Name: models.CategoryOther, IsDefault: true},
	}
}

func TestExtractTestSuite(t *testing.T) {
	suite.Run(t, new(ExtractTestSuite))
}

func (s *ExtractTestSuite) TestMapCategoryLabel_Synonyms() {
	s.Equal(uint(1), MapCategoryLabel("groceries", s.categories))
	s.Equal(uint(1), MapCategoryLabel("dining", s.categories))
	s.Equal(uint(1), MapCategoryLabel("food", s.categories))
	s.Equal(uint(5), MapCategoryLabel("utilities", s.categories))
	s.Equal(uint(5), MapCategoryLabel("bills", s.categories))
}

func (s *ExtractTestSuite) TestMapCategoryLabel_CaseInsensitiveMatch() {
	s.Equal(uint(8), MapCategoryLabel("Personal Care", s.categories))
	s.Equal(uint(8), MapCategoryLabel("PERSONAL CARE", s.categories))
	s.Equal(uint(1), MapCategoryLabel("food & dining", s.categories))
}

func (s *ExtractTestSuite) TestMapCategoryLabel_UnrecognizedFallsBackToOther() {
	s.Equal(uint(10), MapCategoryLabel("xyz-unrecognized", s.categories))
}

func (s *ExtractTestSuite) TestMapCategoryLabel_NoOtherFallsBackToHardcodedID() {
	withoutOther := []models.Category{
		{ID: 1, Name: models.CategoryFoodDining},
	}
	s.Equal(FallbackCategoryID, MapCategoryLabel("xyz-unrecognized", withoutOther))
	s.Equal(FallbackCategoryID, MapCategoryLabel("anything", nil))
}

func (s *ExtractTestSuite) TestMapCategoryLabel_UserScopedOtherWins() {
	userID := uint(7)
	categories := []models.Category{
		{ID: 42, Name: "Other", UserID: &userID},
	}
	s.Equal(uint(42), MapCategoryLabel("xyz-unrecognized", categories))
}

func (s *ExtractTestSuite) TestDraftFromExtracted_AmountIsFlatTotal() {
	draft := DraftFromExtracted(dto.ExtractedExpense{
		Amount:      42.50,
		Category:    "groceries",
		Description: "weekly shop",
	}, s.categories)

	s.Equal("weekly shop", draft.Name)
	s.Equal(uint(1), draft.CategoryID)
	s.True(draft.Unit.Equal(decimal.NewFromInt(1)))
	s.True(draft.PerUnitCost.Equal(decimal.NewFromFloat(42.50)))
	s.True(draft.PreviewTotal().Equal(decimal.NewFromFloat(42.50)))
}

func (s *ExtractTestSuite) TestDraftFromExtracted_FallsBackToMerchantName() {
	merchant := "Corner Store"
	draft := DraftFromExtracted(dto.ExtractedExpense{
		Amount:   5,
		Category: "food",
		Merchant: &merchant,
	}, s.categories)
	s.Equal("Corner Store", draft.Name)
}

func (s *ExtractTestSuite) TestDraftFromExtracted_ParsesDate() {
	date := "2026-08-15"
	draft := DraftFromExtracted(dto.ExtractedExpense{
		Amount:      12,
		Category:    "food",
		Description: "lunch",
		Date:        &date,
	}, s.categories)
	s.Equal(2026, draft.ExpenseDate.Year())
	s.Equal(time.August, draft.ExpenseDate.Month())
	s.Equal(15, draft.ExpenseDate.Day())
}

func (s *ExtractTestSuite) TestDraftFromExtracted_BadDateDefaultsToNow() {
	date := "not-a-date"
	draft := DraftFromExtracted(dto.ExtractedExpense{
		Amount:      12,
		Category:    "food",
		Description: "lunch",
		Date:        &date,
	}, s.categories)
	s.WithinDuration(time.Now(), draft.ExpenseDate, time.Minute)
}

func (s *ExtractTestSuite) TestPreviewTotal() {
	draft := Draft{
		Unit:        decimal.NewFromInt(3),
		PerUnitCost: decimal.NewFromFloat(4.99),
	}
	s.Equal("14.97", draft.PreviewTotal().StringFixed(2))

	empty := Draft{}
	s.True(empty.PreviewTotal().IsZero())
}

func (s *ExtractTestSuite) TestBuildRequest_LowercasesAndRekeys() {
	req := BuildRequest("spent 20 on lunch", s.categories)

	s.Equal("spent 20 on lunch", req.InputData.Paragraph)
	s.Require().Len(req.InputData.Categories, 4)
	s.Equal("cat_1", req.InputData.Categories[0].CategoryID)
	s.Equal("food & dining", req.InputData.Categories[0].Name)
	s.NotNil(req.ConversationHistory)
}

type fakeSubmitter struct {
	failOn  map[string]error
	created []string
}

func (f *fakeSubmitter) CreateExpense(_ context.Context, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if err, ok := f.failOn[req.Name]; ok {
		return nil, err
	}
	f.created = append(f.created, req.Name)
	return &models.Expense{Name: req.Name}, nil
}

func (s *ExtractTestSuite) drafts(names ...string) []Draft {
	drafts := make([]Draft, 0, len(names))
	for _, name := range names {
		drafts = append(drafts, Draft{
			Name:        name,
			CategoryID:  1,
			Unit:        decimal.NewFromInt(1),
			PerUnitCost: decimal.NewFromInt(10),
		})
	}
	return drafts
}

func (s *ExtractTestSuite) TestSubmitAll_AllSucceed() {
	submitter := &fakeSubmitter{}
	result := SubmitAll(context.Background(), submitter, s.drafts("a", "b", "c"))

	s.Equal(3, result.SuccessCount)
	s.Equal(0, result.ErrorCount)
	s.True(result.ShouldNavigate())
	s.Equal([]string{"a", "b", "c"}, submitter.created)
}

func (s *ExtractTestSuite) TestSubmitAll_PartialFailureDoesNotAbortOrNavigate() {
	submitter := &fakeSubmitter{
		failOn: map[string]error{"b": errors.New("category not found")},
	}
	result := SubmitAll(context.Background(), submitter, s.drafts("a", "b", "c"))

	s.Equal(2, result.SuccessCount)
	s.Equal(1, result.ErrorCount)
	s.False(result.ShouldNavigate())
	// Item after the failure was still submitted, in order
	s.Equal([]string{"a", "c"}, submitter.created)
}

func (s *ExtractTestSuite) TestSubmitAll_NothingSubmittedDoesNotNavigate() {
	result := SubmitAll(context.Background(), &fakeSubmitter{}, nil)
	s.Equal(0, result.SuccessCount)
	s.False(result.ShouldNavigate())
}

func (s *ExtractTestSuite) TestCategoryPercentage() {
	percentage := CategoryPercentage(decimal.NewFromInt(125), decimal.NewFromInt(500))
	s.Equal("25.0", percentage.StringFixed(1))
}

func (s *ExtractTestSuite) TestCategoryPercentage_ZeroTotalDoesNotDivide() {
	s.NotPanics(func() {
		percentage := CategoryPercentage(decimal.NewFromInt(125), decimal.Zero)
		s.True(percentage.IsZero())
	})
}
