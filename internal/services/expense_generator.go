package services

import (
	"math/rand"
	"time"

	"minflow/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

type expenseGenerator struct {
	namePool map[string][]string
	rng      *rand.Rand
}

// NewExpenseGenerator creates a generator for realistic expense fixtures,
// used to seed development environments
func NewExpenseGenerator() ExpenseGeneratorInterface {
	source := rand.NewSource(time.Now().UnixNano())
	return &expenseGenerator{
		namePool: initializeNamePool(),
		rng:      rand.New(source),
	}
}

// initializeNamePool maps default category names to plausible expense names
func initializeNamePool() map[string][]string {
	return map[string][]string{
		models.CategoryFoodDining: {
			"Weekly groceries", "Coffee", "Lunch out", "Dinner with friends",
			"Takeout pizza", "Farmers market", "Bakery run", "Snacks",
		},
		models.CategoryTransportation: {
			"Bus fare", "Fuel", "Ride share", "Train ticket",
			"Parking", "Bike repair",
		},
		models.CategoryShopping: {
			"New shoes", "Household supplies", "Electronics", "Clothes",
			"Kitchenware", "Online order",
		},
		models.CategoryEntertainment: {
			"Movie tickets", "Streaming subscription", "Concert",
			"Video game", "Board game night",
		},
		models.CategoryBillsUtilities: {
			"Electricity bill", "Internet bill", "Phone bill",
			"Water bill", "Rent",
		},
		models.CategoryHealthcare: {
			"Pharmacy", "Doctor visit", "Dental checkup", "Vitamins",
		},
		models.CategoryEducation: {
			"Online course", "Textbooks", "Workshop fee",
		},
		models.CategoryPersonalCare: {
			"Haircut", "Gym membership", "Skincare",
		},
		models.CategoryTravel: {
			"Flight ticket", "Hotel night", "Travel insurance", "Luggage",
		},
		models.CategoryOther: {
			"Gift", "Donation", "Miscellaneous",
		},
	}
}

// amountRanges holds per-category spend bands in currency units
var amountRanges = map[string][2]float64{
	models.CategoryFoodDining:     {3, 120},
	models.CategoryTransportation: {2, 80},
	models.CategoryShopping:       {10, 400},
	models.CategoryEntertainment:  {5, 150},
	models.CategoryBillsUtilities: {20, 900},
	models.CategoryHealthcare:     {10, 300},
	models.CategoryEducation:      {15, 500},
	models.CategoryPersonalCare:   {5, 120},
	models.CategoryTravel:         {50, 1200},
	models.CategoryOther:          {1, 200},
}

// GenerateHistoricalExpenses produces count expenses spread over the date
// range, distributed across the given categories
func (g *expenseGenerator) GenerateHistoricalExpenses(userID uint, categories []models.Category, startDate, endDate time.Time, count int) []*models.Expense {
	if len(categories) == 0 || count <= 0 {
		return nil
	}

	expenses := make([]*models.Expense, 0, count)
	for i := 0; i < count; i++ {
		category := categories[g.rng.Intn(len(categories))]

		expenses = append(expenses, &models.Expense{
			Name:        g.GenerateExpenseName(category.Name),
			CategoryID:  category.ID,
			UserID:      userID,
			Unit:        decimal.NewFromInt(1),
			PerUnitCost: g.GenerateAmount(category.Name),
			ExpenseDate: g.GenerateTimestamp(startDate, endDate),
		})
	}

	return expenses
}

// GenerateExpenseName picks a plausible expense name for the category
func (g *expenseGenerator) GenerateExpenseName(categoryName string) string {
	names, ok := g.namePool[categoryName]
	if !ok || len(names) == 0 {
		return gofakeit.ProductName()
	}
	return names[g.rng.Intn(len(names))]
}

// GenerateAmount returns a spend amount within the category's typical band
func (g *expenseGenerator) GenerateAmount(categoryName string) decimal.Decimal {
	bounds, ok := amountRanges[categoryName]
	if !ok {
		bounds = amountRanges[models.CategoryOther]
	}
	return decimal.NewFromFloat(gofakeit.Price(bounds[0], bounds[1]))
}

// GenerateTimestamp returns a random instant within the range
func (g *expenseGenerator) GenerateTimestamp(startDate, endDate time.Time) time.Time {
	span := endDate.Sub(startDate)
	if span <= 0 {
		return startDate
	}
	return startDate.Add(time.Duration(g.rng.Int63n(int64(span))))
}
