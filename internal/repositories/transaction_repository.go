package repositories

import (
	"context"
	"fmt"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepositoryInterface on gorm
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts a single transaction. The id comes from the database
// sequence, so concurrent inserts never share one.
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(ctx context.Context, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}

// GetByDateRange returns every transaction with from <= date <= to, oldest
// first and in insertion order within a day. It is a single statement, so the
// result is one consistent snapshot.
func (r *transactionRepository) GetByDateRange(ctx context.Context, from, to calendar.Date) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Order("id ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

type typeTotal struct {
	TransactionType string
	Total           decimal.Decimal
}

// GetTotalsByType returns the all-time income and expense sums.
func (r *transactionRepository) GetTotalsByType(ctx context.Context) (income, expense decimal.Decimal, err error) {
	var totals []typeTotal
	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("transaction_type, COALESCE(SUM(amount), 0) AS total").
		Group("transaction_type").
		Scan(&totals).Error; err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to get transaction totals: %w", err)
	}

	income, expense = decimal.Zero, decimal.Zero
	for _, t := range totals {
		// SQLite sums NUMERIC columns as REAL.
		total := t.Total.Round(models.AmountScale)
		switch t.TransactionType {
		case models.TransactionTypeIncome:
			income = total
		case models.TransactionTypeExpense:
			expense = total
		}
	}

	return income, expense, nil
}

// Count returns the number of stored transactions
func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
