package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// unavailableLayer fails every call, like a cache whose backend is down
type unavailableLayer struct{}

func (unavailableLayer) Get(context.Context, string) ([]byte, error) {
	return nil, cache.ErrTimeout
}

func (unavailableLayer) Set(context.Context, string, []byte, time.Duration) error {
	return cache.ErrTimeout
}

func (unavailableLayer) Delete(context.Context, string) error {
	return cache.ErrTimeout
}

func (unavailableLayer) Name() string {
	return "unavailable"
}

func (unavailableLayer) Close() error {
	return nil
}

// flakyLayer fails writes while failing is set and passes everything else
// through to the wrapped layer
type flakyLayer struct {
	cache.Layer
	mu      sync.Mutex
	failing bool
}

func (f *flakyLayer) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return cache.ErrTimeout
	}
	return f.Layer.Set(ctx, key, value, ttl)
}

func (f *flakyLayer) setFailing(failing bool) {
	f.mu.Lock()
	f.failing = failing
	f.mu.Unlock()
}

func marchTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:       1,
			Date:     calendar.MustParse("2024-03-05"),
			Type:     models.TransactionTypeExpense,
			Amount:   decimal.RequireFromString("50.00"),
			Category: "Food",
		},
		{
			ID:       2,
			Date:     calendar.MustParse("2024-03-10"),
			Type:     models.TransactionTypeIncome,
			Amount:   decimal.RequireFromString("1000.00"),
			Category: "Salary",
		},
	}
}

type ReportServiceTestSuite struct {
	suite.Suite
	ctrl                *gomock.Controller
	mockTransactionRepo *repository_mocks.MockTransactionRepositoryInterface
	memory              *cache.MemoryCache
	reportCache         *ReportCache
	service             ReportServiceInterface
	ctx                 context.Context
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTransactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.memory = cache.NewMemoryCache(time.Minute)
	s.reportCache = NewReportCache(s.memory, time.Minute)
	s.service = NewReportService(s.mockTransactionRepo, s.reportCache, NoopMetrics{})
	s.ctx = context.Background()
}

func (s *ReportServiceTestSuite) TearDownTest() {
	s.memory.Close()
	s.ctrl.Finish()
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) TestMonthlyReport_Success() {
	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), calendar.MustParse("2024-03-01"), calendar.MustParse("2024-03-31")).
		Return(marchTransactions(), nil)

	report, err := s.service.MonthlyReport(s.ctx, 2024, 3)

	s.Require().NoError(err)
	s.Equal("1000", report.Income.String())
	s.Equal("50", report.Expense.String())
	s.Equal("950", report.Net.String())
	s.Len(report.AmountByCategory, 1)
	s.True(report.AmountByCategory["Food"].Equal(decimal.RequireFromString("50.00")))
}

func (s *ReportServiceTestSuite) TestMonthlyReport_EmptyMonth() {
	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Transaction{}, nil)

	report, err := s.service.MonthlyReport(s.ctx, 2024, 7)

	s.Require().NoError(err)
	s.True(report.Income.IsZero())
	s.True(report.Expense.IsZero())
	s.True(report.Net.IsZero())
	s.Empty(report.AmountByCategory)
}

func (s *ReportServiceTestSuite) TestMonthlyReport_FebruaryRanges() {
	tests := []struct {
		year int
		last string
	}{
		{2024, "2024-02-29"},
		{2023, "2023-02-28"},
		{2000, "2000-02-29"},
		{1900, "1900-02-28"},
	}

	for _, tt := range tests {
		first := calendar.NewDate(tt.year, time.February, 1)
		s.mockTransactionRepo.EXPECT().
			GetByDateRange(gomock.Any(), first, calendar.MustParse(tt.last)).
			Return([]models.Transaction{}, nil)

		report, err := s.service.MonthlyReport(s.ctx, tt.year, 2)

		s.Require().NoError(err)
		s.Equal(tt.last, report.EndDate.String())
	}
}

func (s *ReportServiceTestSuite) TestMonthlyReport_InvalidInput() {
	tests := []struct {
		name        string
		year, month int
		field       string
	}{
		{"month zero", 2024, 0, "month"},
		{"month thirteen", 2024, 13, "month"},
		{"negative month", 2024, -1, "month"},
		{"year zero", 0, 3, "year"},
		{"five digit year", 10000, 3, "year"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			report, err := s.service.MonthlyReport(s.ctx, tt.year, tt.month)

			s.Nil(report)
			var ve *ValidationError
			s.Require().ErrorAs(err, &ve)
			s.Equal(tt.field, ve.Field)
		})
	}
}

func (s *ReportServiceTestSuite) TestMonthlyReport_StoreFailure() {
	cause := errors.New("connection refused")
	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, cause)

	report, err := s.service.MonthlyReport(s.ctx, 2024, 3)

	s.Nil(report)
	s.True(IsStoreError(err))
	s.ErrorIs(err, cause)
}

func (s *ReportServiceTestSuite) TestMonthlyReport_ServedFromCache() {
	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(marchTransactions(), nil).
		Times(1)

	first, err := s.service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)

	second, err := s.service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)

	s.True(first.Net.Equal(second.Net))
	s.True(second.AmountByCategory["Food"].Equal(decimal.RequireFromString("50")))
	s.Equal(first.Categories[0].Category, second.Categories[0].Category)
}

func (s *ReportServiceTestSuite) TestMonthlyReport_InvalidatedMonthIsRecomputed() {
	updated := append(marchTransactions(), models.Transaction{
		ID:       3,
		Date:     calendar.MustParse("2024-03-20"),
		Type:     models.TransactionTypeExpense,
		Amount:   decimal.RequireFromString("25.50"),
		Category: "Transport",
	})

	gomock.InOrder(
		s.mockTransactionRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(marchTransactions(), nil),
		s.mockTransactionRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(updated, nil),
	)

	before, err := s.service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)

	s.Require().NoError(s.reportCache.Invalidate(s.ctx, "2024-03"))

	after, err := s.service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)

	s.Equal("950", before.Net.String())
	s.Equal("924.5", after.Net.String())
}

func (s *ReportServiceTestSuite) TestMonthlyReport_OtherMonthsStayCached() {
	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(marchTransactions(), nil).
		Times(1)

	_, err := s.service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)

	s.Require().NoError(s.reportCache.Invalidate(s.ctx, "2024-04"))

	_, err = s.service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)
}

func (s *ReportServiceTestSuite) TestMonthlyReport_CacheUnavailable() {
	service := NewReportService(s.mockTransactionRepo, NewReportCache(unavailableLayer{}, time.Minute), NoopMetrics{})

	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(marchTransactions(), nil).
		Times(2)

	for i := 0; i < 2; i++ {
		report, err := service.MonthlyReport(s.ctx, 2024, 3)
		s.Require().NoError(err)
		s.Equal("950", report.Net.String())
	}
}

func (s *ReportServiceTestSuite) TestMonthlyReport_WithoutCacheAlwaysReadsStore() {
	service := NewReportService(s.mockTransactionRepo, nil, nil)

	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(marchTransactions(), nil).
		Times(2)

	for i := 0; i < 2; i++ {
		_, err := service.MonthlyReport(s.ctx, 2024, 3)
		s.Require().NoError(err)
	}
}

func (s *ReportServiceTestSuite) TestMonthlyReport_ConcurrentRequestsAgree() {
	service := NewReportService(s.mockTransactionRepo, nil, nil)
	release := make(chan struct{})

	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, calendar.Date, calendar.Date) ([]models.Transaction, error) {
			<-release
			return marchTransactions(), nil
		}).
		MinTimes(1).
		MaxTimes(8)

	var wg sync.WaitGroup
	results := make([]*models.MonthlyReport, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			report, err := service.MonthlyReport(s.ctx, 2024, 3)
			if err == nil {
				results[i] = report
			}
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, report := range results {
		s.Require().NotNil(report)
		s.Equal("950", report.Net.String())
	}
}

func (s *ReportServiceTestSuite) TestMonthlyReport_CancelledCallerDoesNotFailOthers() {
	service := NewReportService(s.mockTransactionRepo, nil, nil)
	loading := make(chan struct{})
	release := make(chan struct{})

	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ calendar.Date) ([]models.Transaction, error) {
			close(loading)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-release:
				return marchTransactions(), nil
			}
		}).
		Times(1)

	firstCtx, cancelFirst := context.WithCancel(s.ctx)
	defer cancelFirst()
	firstErr := make(chan error, 1)
	go func() {
		_, err := service.MonthlyReport(firstCtx, 2024, 3)
		firstErr <- err
	}()
	<-loading

	type outcome struct {
		report *models.MonthlyReport
		err    error
	}
	second := make(chan outcome, 1)
	go func() {
		report, err := service.MonthlyReport(s.ctx, 2024, 3)
		second <- outcome{report, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.FailNow("cancelled caller kept waiting")
	}

	close(release)
	got := <-second
	s.Require().NoError(got.err)
	s.Equal("950", got.report.Net.String())
}

func (s *ReportServiceTestSuite) TestMonthlyReport_CoalescedFailureReachesEveryCaller() {
	service := NewReportService(s.mockTransactionRepo, nil, nil)
	cause := errors.New("connection reset")
	release := make(chan struct{})

	s.mockTransactionRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, calendar.Date, calendar.Date) ([]models.Transaction, error) {
			<-release
			return nil, cause
		}).
		MinTimes(1).
		MaxTimes(4)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.MonthlyReport(s.ctx, 2024, 3)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		s.True(IsStoreError(err))
		s.ErrorIs(err, cause)
	}
}

func (s *ReportServiceTestSuite) TestMonthlyReport_FailedInvalidationBypassesCache() {
	layer := &flakyLayer{Layer: s.memory}
	reportCache := NewReportCache(layer, time.Minute)
	service := NewReportService(s.mockTransactionRepo, reportCache, nil)

	gomock.InOrder(
		s.mockTransactionRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(marchTransactions(), nil),
		s.mockTransactionRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(marchTransactions()[:1], nil).
			Times(2),
	)

	_, err := service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)

	layer.setFailing(true)
	s.Require().Error(reportCache.Invalidate(s.ctx, "2024-03"))

	report, err := service.MonthlyReport(s.ctx, 2024, 3)
	s.Require().NoError(err)
	s.Equal("-50", report.Net.String())

	// Once a token write succeeds the fresh report is cached again.
	layer.setFailing(false)
	for i := 0; i < 2; i++ {
		report, err := service.MonthlyReport(s.ctx, 2024, 3)
		s.Require().NoError(err)
		s.Equal("-50", report.Net.String())
	}
}

// Balance tests

func (s *ReportServiceTestSuite) TestBalance_Success() {
	s.mockTransactionRepo.EXPECT().
		GetTotalsByType(gomock.Any()).
		Return(decimal.RequireFromString("3000.00"), decimal.RequireFromString("1250.75"), nil)

	balance, err := s.service.Balance(s.ctx)

	s.NoError(err)
	s.Equal("1749.25", balance.StringFixed(2))
}

func (s *ReportServiceTestSuite) TestBalance_StoreFailure() {
	s.mockTransactionRepo.EXPECT().
		GetTotalsByType(gomock.Any()).
		Return(decimal.Zero, decimal.Zero, errors.New("timeout"))

	_, err := s.service.Balance(s.ctx)

	var se *StoreError
	s.Require().ErrorAs(err, &se)
	s.Equal("balance", se.Op)
}
