package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

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

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	// Money fields are validated through their decimal string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if m, ok := field.Interface().(dto.Money); ok {
			return m.String()
		}
		return nil
	}, dto.Money{})

	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("category_name", validateCategoryName)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns field errors keyed by JSON name. A nil map
// means s is valid.
func (v *Validator) Struct(s interface{}) (map[string]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrors[fe.Field()] = FormatFieldError(fe)
	}
	return fieldErrors, nil
}

// FormatFieldError turns a failed rule into a message for API clients.
func FormatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "calendar_date":
		return "must be a valid date in YYYY-MM-DD format"
	case "transaction_type":
		return "must be INCOME or EXPENSE"
	case "money_amount":
		return "must be a positive amount with at most 2 decimal places"
	case "category_name":
		return fmt.Sprintf("must be at most %d characters", models.MaxCategoryLength)
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// SortedDetails renders field errors as "field: message", ordered by field.
func SortedDetails(fieldErrors map[string]string) []string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, field+": "+fieldErrors[field])
	}
	return details
}

// Custom validation functions

// validateCalendarDate accepts strict YYYY-MM-DD dates that exist
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := calendar.Parse(fl.Field().String())
	return err == nil
}

// validateTransactionType accepts INCOME or EXPENSE in any case
func validateTransactionType(fl validator.FieldLevel) bool {
	return models.IsValidTransactionType(models.NormalizeTransactionType(fl.Field().String()))
}

// validateMoneyAmount validates that an amount is positive and has at most 2 decimal places
func validateMoneyAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return models.ValidateAmount(amount) == nil
}

func validateCategoryName(fl validator.FieldLevel) bool {
	return len([]rune(strings.TrimSpace(fl.Field().String()))) <= models.MaxCategoryLength
}
