package repositories

import (
	"context"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionRepositoryInterface defines the contract for the transaction store.
// The store is append-only: there is no update or delete.
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	CreateBatch(ctx context.Context, transactions []models.Transaction) error
	GetByDateRange(ctx context.Context, from, to calendar.Date) ([]models.Transaction, error)
	GetTotalsByType(ctx context.Context) (income, expense decimal.Decimal, err error)
	Count(ctx context.Context) (int64, error)
}
