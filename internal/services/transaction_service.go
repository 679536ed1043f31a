package services

import (
	"context"
	"log/slog"
	"time"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/events"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
)

// MaxSeedCount caps the number of generated transactions per seed request.
const MaxSeedCount = 500

// seedPublishBudget bounds the event publishing that follows a seed.
const seedPublishBudget = 10 * time.Second

type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	reportCache     *ReportCache
	publisher       events.Publisher
	generator       TransactionGeneratorInterface
	metrics         MetricsRecorderInterface
	publishBudget   time.Duration
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	reportCache *ReportCache,
	publisher events.Publisher,
	generator TransactionGeneratorInterface,
	metrics MetricsRecorderInterface,
) TransactionServiceInterface {
	if reportCache == nil {
		reportCache = NewReportCache(nil, 0)
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &transactionService{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
		publisher:       publisher,
		generator:       generator,
		metrics:         metrics,
		publishBudget:   seedPublishBudget,
	}
}

func (s *transactionService) AddTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	start := time.Now()

	transaction.ID = 0
	transaction.Normalize()
	if err := transaction.Validate(); err != nil {
		s.recordFailure("append", "validation")
		return nil, validationFromModel(err)
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		slog.ErrorContext(ctx, "failed to append transaction",
			"date", transaction.Date.String(),
			"type", transaction.Type,
			"error", err)
		s.recordFailure("append", "store")
		return nil, &StoreError{Op: "append", Err: err}
	}

	// The record is committed; the request context may already be gone.
	postCommit := context.WithoutCancel(ctx)
	s.invalidateMonth(postCommit, transaction.Date)
	s.publish(postCommit, transaction)
	s.metrics.RecordGauge("transactions.stored.added", 1, nil)

	s.metrics.IncrementCounter("transaction.processed.success", map[string]string{"operation": "append"})
	s.metrics.RecordGauge("transaction.amount", transaction.Amount.InexactFloat64(), map[string]string{"type": transaction.Type})
	s.metrics.RecordProcessingTime("transaction.append", time.Since(start))

	slog.InfoContext(ctx, "transaction appended",
		"transaction_id", transaction.ID,
		"date", transaction.Date.String(),
		"type", transaction.Type,
		"amount", transaction.Amount.StringFixed(models.AmountScale))

	return transaction, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, from, to calendar.Date) ([]models.Transaction, error) {
	start := time.Now()

	if from.IsZero() {
		return nil, NewValidationError("from", calendar.ErrInvalidDate.Error())
	}
	if to.IsZero() {
		return nil, NewValidationError("to", calendar.ErrInvalidDate.Error())
	}
	if from.After(to) {
		s.recordFailure("query", "validation")
		return nil, NewValidationError("from", "from date must not be after to date")
	}

	transactions, err := s.transactionRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query transactions",
			"from", from.String(),
			"to", to.String(),
			"error", err)
		s.recordFailure("query", "store")
		return nil, &StoreError{Op: "query", Err: err}
	}

	s.metrics.IncrementCounter("transaction.processed.success", map[string]string{"operation": "query"})
	s.metrics.RecordProcessingTime("transaction.query", time.Since(start))

	return transactions, nil
}

func (s *transactionService) SeedMonth(ctx context.Context, year, month, count int) ([]models.Transaction, error) {
	start := time.Now()

	if _, _, err := calendar.MonthRange(year, month); err != nil {
		return nil, validationFromModel(err)
	}
	if count < 1 || count > MaxSeedCount {
		return nil, NewValidationError("count", "count must be between 1 and 500")
	}
	if s.generator == nil {
		return nil, NewValidationError("", "sample data generation is not available")
	}

	transactions := s.generator.GenerateMonth(year, time.Month(month), count)
	if err := s.transactionRepo.CreateBatch(ctx, transactions); err != nil {
		slog.ErrorContext(ctx, "failed to seed transactions",
			"year", year,
			"month", month,
			"count", count,
			"error", err)
		s.recordFailure("seed", "store")
		return nil, &StoreError{Op: "seed", Err: err}
	}

	postCommit := context.WithoutCancel(ctx)
	s.invalidateMonth(postCommit, calendar.NewDate(year, time.Month(month), 1))
	s.publishSeeded(postCommit, transactions)
	s.metrics.RecordGauge("transactions.stored.added", float64(len(transactions)), nil)

	s.metrics.IncrementCounter("transaction.processed.success", map[string]string{"operation": "seed"})
	s.metrics.RecordProcessingTime("transaction.seed", time.Since(start))

	slog.InfoContext(ctx, "seeded transactions", "year", year, "month", month, "count", len(transactions))

	return transactions, nil
}

func (s *transactionService) invalidateMonth(ctx context.Context, date calendar.Date) {
	month := calendar.MonthKey(date.Year(), date.Month())
	if err := s.reportCache.Invalidate(ctx, month); err != nil {
		// This process bypasses the month's cached reports until a token write
		// succeeds. Other instances may serve them until CACHE_TTL.
		slog.WarnContext(ctx, "failed to invalidate cached report",
			"month", month,
			"error", err)
		s.metrics.IncrementCounter("cache.operation", map[string]string{"operation": "invalidate", "result": "error"})
	}
}

func (s *transactionService) publish(ctx context.Context, transaction *models.Transaction) {
	if err := s.publisher.PublishTransactionCreated(ctx, transaction); err != nil {
		slog.WarnContext(ctx, "failed to publish transaction event",
			"transaction_id", transaction.ID,
			"error", err)
		s.metrics.IncrementCounter("event.publish.failed", nil)
		return
	}
	s.metrics.IncrementCounter("event.published", nil)
}

// publishSeeded publishes one event per seeded transaction and gives up on the
// rest once the publish budget is spent.
func (s *transactionService) publishSeeded(ctx context.Context, transactions []models.Transaction) {
	ctx, cancel := context.WithTimeout(ctx, s.publishBudget)
	defer cancel()

	for i := range transactions {
		if ctx.Err() != nil {
			skipped := len(transactions) - i
			slog.WarnContext(ctx, "publish budget exhausted, skipping seeded transaction events",
				"skipped", skipped,
				"budget", s.publishBudget)
			for range skipped {
				s.metrics.IncrementCounter("event.publish.failed", nil)
			}
			return
		}
		s.publish(ctx, &transactions[i])
	}
}

func (s *transactionService) recordFailure(operation, reason string) {
	s.metrics.IncrementCounter("transaction.processed.failed", map[string]string{
		"operation": operation,
		"reason":    reason,
	})
}
