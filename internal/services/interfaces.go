package services

import (
	"context"
	"time"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionServiceInterface defines the operations on the transaction store
type TransactionServiceInterface interface {
	// AddTransaction validates and appends a transaction. The stored record,
	// including its assigned id, is returned.
	AddTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)

	// ListTransactions returns transactions dated within [from, to], ordered
	// by date and then by insertion order.
	ListTransactions(ctx context.Context, from, to calendar.Date) ([]models.Transaction, error)

	// SeedMonth appends count generated transactions dated within year/month.
	SeedMonth(ctx context.Context, year, month, count int) ([]models.Transaction, error)
}

// ReportServiceInterface defines the aggregation operations
type ReportServiceInterface interface {
	MonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
}

// TransactionGeneratorInterface produces plausible sample transactions
type TransactionGeneratorInterface interface {
	GenerateTransaction(date calendar.Date) models.Transaction
	GenerateMonth(year int, month time.Month, count int) []models.Transaction
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
