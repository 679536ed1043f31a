package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-tracker/internal/calendar"
)

const (
	TransactionTypeIncome  = "INCOME"
	TransactionTypeExpense = "EXPENSE"

	MaxCategoryLength = 50
	MaxNoteLength     = 1000
	AmountScale       = 2
)

var (
	ErrDateRequired           = errors.New("transaction date is required")
	ErrInvalidTransactionType = errors.New("transaction type must be INCOME or EXPENSE")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrAmountPrecision        = errors.New("transaction amount must have at most 2 decimal places")
	ErrAmountTooLarge         = errors.New("transaction amount exceeds the maximum supported value")
	ErrCategoryRequired       = errors.New("category is required for expenses")
	ErrCategoryTooLong        = errors.New("category must be at most 50 characters")
	ErrNoteTooLong            = errors.New("note must be at most 1000 characters")
)

// maxAmount is the first value that does not fit a decimal(15,2) column.
var maxAmount = decimal.New(1, 13)

// Transaction is a single income or expense record. Records are append-only;
// ID is assigned by the database sequence and orders records of the same date.
type Transaction struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Date      calendar.Date   `gorm:"type:date;not null;index" json:"date"`
	Type      string          `gorm:"column:transaction_type;type:varchar(10);not null" json:"type"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category  string          `gorm:"type:varchar(50);not null;default:''" json:"category"`
	Note      string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	t.Normalize()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return t.Validate()
}

// Normalize trims free text and upper-cases the type.
func (t *Transaction) Normalize() {
	t.Type = NormalizeTransactionType(t.Type)
	t.Category = strings.TrimSpace(t.Category)
	t.Note = strings.TrimSpace(t.Note)
}

// Validate checks the record against the store's invariants. It expects a
// normalized transaction.
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrDateRequired
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if t.Type == TransactionTypeExpense && t.Category == "" {
		return ErrCategoryRequired
	}

	if utf8.RuneCountInString(t.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}

	if utf8.RuneCountInString(t.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}

	return nil
}

// IsIncome returns true for INCOME records
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense returns true for EXPENSE records
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// SignedAmount is the record's contribution to net: +amount for income,
// -amount for expenses.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// ValidateAmount enforces amount > 0 with cent precision.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return ErrAmountPrecision
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// NormalizeTransactionType maps user input such as "income" to INCOME.
// Unknown values are returned upper-cased and fail IsValidTransactionType.
func NormalizeTransactionType(transactionType string) string {
	return strings.ToUpper(strings.TrimSpace(transactionType))
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}
