package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense records a purchase of Unit items at PerUnitCost each. Total is
// always derived server-side in BeforeSave; values supplied by clients for
// Total are overwritten and never trusted.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Unit        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit"`
	PerUnitCost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"per_unit_cost"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	ExpenseDate time.Time       `gorm:"not null;index" json:"expense_date"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeSave recomputes the authoritative total.
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.Total = e.Unit.Mul(e.PerUnitCost)
	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = now
	}

	return e.Validate()
}

func (e *Expense) Validate() error {
	if e.Name == "" {
		return errors.New("expense name is required")
	}

	if e.CategoryID == 0 {
		return errors.New("category is required")
	}

	if e.UserID == 0 {
		return errors.New("user is required")
	}

	if !e.Unit.IsPositive() {
		return errors.New("unit must be positive")
	}

	if !e.PerUnitCost.IsPositive() {
		return errors.New("per unit cost must be positive")
	}

	return nil
}

func (e *Expense) TableName() string {
	return "expenses"
}
