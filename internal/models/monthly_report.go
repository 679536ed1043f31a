package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/calendar"
)

// MonthlyReport aggregates the transactions of one calendar month. It is
// derived on demand and never persisted.
type MonthlyReport struct {
	Year             int                        `json:"year"`
	Month            int                        `json:"month"`
	StartDate        calendar.Date              `json:"start_date"`
	EndDate          calendar.Date              `json:"end_date"`
	Income           decimal.Decimal            `json:"income"`
	Expense          decimal.Decimal            `json:"expense"`
	Net              decimal.Decimal            `json:"net"`
	AmountByCategory map[string]decimal.Decimal `json:"amount_by_category"`
	Categories       []CategoryTotal            `json:"categories"`
	TransactionCount int                        `json:"transaction_count"`
	IncomeCount      int                        `json:"income_count"`
	ExpenseCount     int                        `json:"expense_count"`
	GeneratedAt      time.Time                  `json:"generated_at"`
}

// NewMonthlyReport folds transactions into a report for year/month. Income
// adds to Income, expenses add to Expense and to their category. Categories
// whose total is zero are left out of the breakdown.
func NewMonthlyReport(year int, month time.Month, transactions []Transaction) *MonthlyReport {
	report := &MonthlyReport{
		Year:             year,
		Month:            int(month),
		StartDate:        calendar.NewDate(year, month, 1),
		EndDate:          calendar.NewDate(year, month, calendar.DaysInMonth(year, month)),
		Income:           decimal.Zero,
		Expense:          decimal.Zero,
		AmountByCategory: make(map[string]decimal.Decimal),
		Categories:       []CategoryTotal{},
		TransactionCount: len(transactions),
		GeneratedAt:      time.Now().UTC(),
	}

	counts := make(map[string]int)
	for i := range transactions {
		t := &transactions[i]
		switch t.Type {
		case TransactionTypeIncome:
			report.Income = report.Income.Add(t.Amount)
			report.IncomeCount++
		case TransactionTypeExpense:
			report.Expense = report.Expense.Add(t.Amount)
			report.ExpenseCount++
			report.AmountByCategory[t.Category] = report.AmountByCategory[t.Category].Add(t.Amount)
			counts[t.Category]++
		}
	}

	report.Net = report.Income.Sub(report.Expense)

	for category, total := range report.AmountByCategory {
		if total.IsZero() {
			delete(report.AmountByCategory, category)
			continue
		}
		count := counts[category]
		report.Categories = append(report.Categories, CategoryTotal{
			Category:         category,
			TransactionCount: count,
			TotalAmount:      total,
			AverageAmount:    total.Div(decimal.NewFromInt(int64(count))).Round(AmountScale),
		})
	}

	sort.Slice(report.Categories, func(i, j int) bool {
		a, b := report.Categories[i], report.Categories[j]
		if cmp := a.TotalAmount.Cmp(b.TotalAmount); cmp != 0 {
			return cmp > 0
		}
		return a.Category < b.Category
	})

	return report
}
