package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Default category names seeded at startup. "Other" is the catch-all the
// client falls back to when an AI-extracted label matches nothing.
const (
	CategoryFoodDining     = "Food & Dining"
	CategoryTransportation = "Transportation"
	CategoryShopping       = "Shopping"
	CategoryEntertainment  = "Entertainment"
	CategoryBillsUtilities = "Bills & Utilities"
	CategoryHealthcare     = "Healthcare"
	CategoryEducation      = "Education"
	CategoryPersonalCare   = "Personal Care"
	CategoryTravel         = "Travel"
	CategoryOther          = "Other"
)

// DefaultCategoryNames returns the seeded system categories in insertion
// order; "Other" is last and therefore receives id 10 on a fresh database.
func DefaultCategoryNames() []string {
	return []string{
		CategoryFoodDining,
		CategoryTransportation,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBillsUtilities,
		CategoryHealthcare,
		CategoryEducation,
		CategoryPersonalCare,
		CategoryTravel,
		CategoryOther,
	}
}

// Category is either a system-wide default (UserID nil, IsDefault true) or a
// user-scoped category visible only to its owner.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	IsDefault bool           `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("category name is required")
	}

	if c.IsDefault && c.UserID != nil {
		return errors.New("default categories cannot be user-scoped")
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
