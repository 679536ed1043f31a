package services

import (
	"errors"
	"fmt"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"
)

// ValidationError reports input that was rejected before reaching the store.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StoreError reports a persistence failure. Op names the store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStoreError reports whether err is or wraps a *StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// validationFromModel maps model and calendar sentinel errors to the field
// they describe.
func validationFromModel(err error) error {
	field := ""
	switch {
	case errors.Is(err, models.ErrDateRequired), errors.Is(err, calendar.ErrInvalidDate):
		field = "date"
	case errors.Is(err, models.ErrInvalidTransactionType):
		field = "type"
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrAmountPrecision),
		errors.Is(err, models.ErrAmountTooLarge):
		field = "amount"
	case errors.Is(err, models.ErrCategoryRequired), errors.Is(err, models.ErrCategoryTooLong):
		field = "category"
	case errors.Is(err, models.ErrNoteTooLong):
		field = "note"
	case errors.Is(err, calendar.ErrInvalidYear):
		field = "year"
	case errors.Is(err, calendar.ErrInvalidMonth):
		field = "month"
	}
	return NewValidationError(field, err.Error())
}
