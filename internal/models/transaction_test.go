package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-tracker/internal/calendar"
)

func TestTransaction_Validate(t *testing.T) {
	date := calendar.MustParse("2024-03-05")

	tests := []struct {
		name        string
		transaction Transaction
		wantErr     error
	}{
		{
			name: "valid expense",
			transaction: Transaction{
				Date:     date,
				Type:     TransactionTypeExpense,
				Amount:   decimal.RequireFromString("50.00"),
				Category: "Food",
			},
		},
		{
			name: "valid income without category",
			transaction: Transaction{
				Date:   date,
				Type:   TransactionTypeIncome,
				Amount: decimal.RequireFromString("1000"),
			},
		},
		{
			name: "missing date",
			transaction: Transaction{
				Type:     TransactionTypeExpense,
				Amount:   decimal.RequireFromString("10"),
				Category: "Food",
			},
			wantErr: ErrDateRequired,
		},
		{
			name: "invalid type",
			transaction: Transaction{
				Date:   date,
				Type:   "TRANSFER",
				Amount: decimal.RequireFromString("10"),
			},
			wantErr: ErrInvalidTransactionType,
		},
		{
			name: "zero amount",
			transaction: Transaction{
				Date:     date,
				Type:     TransactionTypeExpense,
				Amount:   decimal.Zero,
				Category: "Food",
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			transaction: Transaction{
				Date:     date,
				Type:     TransactionTypeExpense,
				Amount:   decimal.RequireFromString("-5.00"),
				Category: "Food",
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "sub-cent amount",
			transaction: Transaction{
				Date:     date,
				Type:     TransactionTypeIncome,
				Amount:   decimal.RequireFromString("10.005"),
				Category: "Salary",
			},
			wantErr: ErrAmountPrecision,
		},
		{
			name: "amount too large",
			transaction: Transaction{
				Date:   date,
				Type:   TransactionTypeIncome,
				Amount: decimal.RequireFromString("10000000000000"),
			},
			wantErr: ErrAmountTooLarge,
		},
		{
			name: "expense without category",
			transaction: Transaction{
				Date:   date,
				Type:   TransactionTypeExpense,
				Amount: decimal.RequireFromString("10"),
			},
			wantErr: ErrCategoryRequired,
		},
		{
			name: "category too long",
			transaction: Transaction{
				Date:     date,
				Type:     TransactionTypeExpense,
				Amount:   decimal.RequireFromString("10"),
				Category: strings.Repeat("x", MaxCategoryLength+1),
			},
			wantErr: ErrCategoryTooLong,
		},
		{
			name: "note too long",
			transaction: Transaction{
				Date:   date,
				Type:   TransactionTypeIncome,
				Amount: decimal.RequireFromString("10"),
				Note:   strings.Repeat("n", MaxNoteLength+1),
			},
			wantErr: ErrNoteTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transaction.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTransaction_Normalize(t *testing.T) {
	tx := Transaction{
		Date:     calendar.MustParse("2024-03-05"),
		Type:     " expense ",
		Amount:   decimal.RequireFromString("12.50"),
		Category: "  Food ",
		Note:     " lunch ",
	}

	tx.Normalize()

	assert.Equal(t, TransactionTypeExpense, tx.Type)
	assert.Equal(t, "Food", tx.Category)
	assert.Equal(t, "lunch", tx.Note)
	require.NoError(t, tx.Validate())
}

func TestTransaction_BlankCategoryAfterNormalize(t *testing.T) {
	tx := Transaction{
		Date:     calendar.MustParse("2024-03-05"),
		Type:     TransactionTypeExpense,
		Amount:   decimal.RequireFromString("1"),
		Category: "   ",
	}

	tx.Normalize()

	assert.ErrorIs(t, tx.Validate(), ErrCategoryRequired)
}

func TestTransaction_SignedAmount(t *testing.T) {
	income := Transaction{Type: TransactionTypeIncome, Amount: decimal.RequireFromString("100")}
	expense := Transaction{Type: TransactionTypeExpense, Amount: decimal.RequireFromString("40")}

	assert.True(t, income.SignedAmount().Equal(decimal.RequireFromString("100")))
	assert.True(t, expense.SignedAmount().Equal(decimal.RequireFromString("-40")))
	assert.True(t, income.IsIncome())
	assert.True(t, expense.IsExpense())
}

func TestIsValidTransactionType(t *testing.T) {
	assert.True(t, IsValidTransactionType(TransactionTypeIncome))
	assert.True(t, IsValidTransactionType(TransactionTypeExpense))
	assert.False(t, IsValidTransactionType("income"))
	assert.True(t, IsValidTransactionType(NormalizeTransactionType("income")))
	assert.False(t, IsValidTransactionType(""))
}
