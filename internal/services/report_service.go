package services

import (
	"context"
	"log/slog"
	"time"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// reportLoadTimeout bounds a shared report load, which outlives the request
// that started it.
const reportLoadTimeout = 30 * time.Second

type reportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	reportCache     *ReportCache
	metrics         MetricsRecorderInterface
	group           singleflight.Group
}

func NewReportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	reportCache *ReportCache,
	metrics MetricsRecorderInterface,
) ReportServiceInterface {
	if reportCache == nil {
		reportCache = NewReportCache(nil, 0)
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &reportService{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
		metrics:         metrics,
	}
}

// MonthlyReport aggregates every transaction dated within year/month. A month
// without transactions yields a zero report.
func (s *reportService) MonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("report.monthly", time.Since(start))
	}()

	if _, _, err := calendar.MonthRange(year, month); err != nil {
		return nil, validationFromModel(err)
	}
	monthKey := calendar.MonthKey(year, time.Month(month))

	// The version is taken before the store is read so that a report never
	// outlives an append that committed after its query.
	generation, token, err := s.reportCache.Version(ctx, monthKey)
	if err != nil {
		slog.WarnContext(ctx, "report cache unavailable, computing directly",
			"month", monthKey,
			"error", err)
		s.recordCache("version", err)
	}

	if token != "" {
		report, err := s.reportCache.Get(ctx, monthKey, token)
		switch {
		case err == nil:
			s.metrics.IncrementCounter("report.cache.hit", nil)
			s.recordCache("get", nil)
			return report, nil
		case cache.IsMiss(err):
			s.recordCache("get", err)
		default:
			slog.WarnContext(ctx, "failed to read cached report",
				"month", monthKey,
				"error", err)
			s.recordCache("get", err)
		}
	}

	// The shared load must not depend on whichever caller started it; each
	// caller stops waiting when its own context ends.
	key := monthKey + ":" + generation + ":" + token
	ch := s.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportLoadTimeout)
		defer cancel()
		return s.buildReport(loadCtx, year, time.Month(month), monthKey, token)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, &StoreError{Op: "report", Err: ctx.Err()}
	}
	if res.Err != nil {
		slog.ErrorContext(ctx, "failed to build monthly report",
			"year", year,
			"month", month,
			"error", res.Err)
		return nil, res.Err
	}
	if res.Shared {
		s.metrics.IncrementCounter("report.coalesced", nil)
	}

	return res.Val.(*models.MonthlyReport), nil
}

func (s *reportService) buildReport(ctx context.Context, year int, month time.Month, monthKey, token string) (*models.MonthlyReport, error) {
	first, last, err := calendar.MonthRange(year, int(month))
	if err != nil {
		return nil, validationFromModel(err)
	}

	transactions, err := s.transactionRepo.GetByDateRange(ctx, first, last)
	if err != nil {
		return nil, &StoreError{Op: "report", Err: err}
	}

	report := models.NewMonthlyReport(year, month, transactions)
	s.metrics.IncrementCounter("report.computed", nil)

	if err := s.reportCache.Put(ctx, monthKey, token, report); err != nil {
		slog.WarnContext(ctx, "failed to cache report",
			"month", monthKey,
			"error", err)
		s.recordCache("set", err)
	}
	return report, nil
}

// Balance is all-time income minus all-time expense.
func (s *reportService) Balance(ctx context.Context) (decimal.Decimal, error) {
	income, expense, err := s.transactionRepo.GetTotalsByType(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compute balance", "error", err)
		return decimal.Zero, &StoreError{Op: "balance", Err: err}
	}
	return income.Sub(expense), nil
}

func (s *reportService) recordCache(operation string, err error) {
	result := "ok"
	if err != nil {
		result = cache.ClassifyError(err)
	}
	s.metrics.IncrementCounter("cache.operation", map[string]string{
		"operation": operation,
		"result":    result,
	})
}
