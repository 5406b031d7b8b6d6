package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("decimal_positive", validateDecimalPositive)
	_ = v.RegisterValidation("category_name", validateCategoryName)
	_ = v.RegisterValidation("expense_date", validateExpenseDate)

	v.RegisterCustomTypeFunc(decimalValuer, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// decimalValuer exposes decimal.Decimal fields to the validator as their
// string form so the "required" rule sees zero values correctly
func decimalValuer(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		if d.IsZero() {
			return ""
		}
		return d.String()
	}
	return nil
}

// Custom validation functions

// validateDecimalPositive validates that a decimal amount is strictly greater
// than zero
func validateDecimalPositive(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok || value == "" {
		return false
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}

	return d.IsPositive()
}

// validateCategoryName validates that a category name is non-blank after
// trimming whitespace
func validateCategoryName(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateExpenseDate validates that an expense date, when present, is not in
// the future
func validateExpenseDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	if date.IsZero() {
		return true
	}

	return !date.After(time.Now())
}
