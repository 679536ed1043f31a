package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryTotalResponse is one row of the expense breakdown
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
	Count    int    `json:"count"`
	Average  Money  `json:"average"`
}

// MonthlyReportResponse is the body of GET /api/reports/monthly
type MonthlyReportResponse struct {
	Year             int                     `json:"year"`
	Month            int                     `json:"month"`
	From             string                  `json:"from"`
	To               string                  `json:"to"`
	Income           Money                   `json:"income"`
	Expense          Money                   `json:"expense"`
	Net              Money                   `json:"net"`
	AmountByCategory map[string]Money        `json:"amountByCategory"`
	Categories       []CategoryTotalResponse `json:"categories"`
	TransactionCount int                     `json:"transactionCount"`
	GeneratedAt      time.Time               `json:"generatedAt"`
}

func NewMonthlyReportResponse(report *models.MonthlyReport) MonthlyReportResponse {
	byCategory := make(map[string]Money, len(report.AmountByCategory))
	for category, total := range report.AmountByCategory {
		byCategory[category] = NewMoney(total)
	}

	categories := make([]CategoryTotalResponse, 0, len(report.Categories))
	for _, c := range report.Categories {
		categories = append(categories, CategoryTotalResponse{
			Category: c.Category,
			Total:    NewMoney(c.TotalAmount),
			Count:    c.TransactionCount,
			Average:  NewMoney(c.AverageAmount),
		})
	}

	return MonthlyReportResponse{
		Year:             report.Year,
		Month:            report.Month,
		From:             report.StartDate.String(),
		To:               report.EndDate.String(),
		Income:           NewMoney(report.Income),
		Expense:          NewMoney(report.Expense),
		Net:              NewMoney(report.Net),
		AmountByCategory: byCategory,
		Categories:       categories,
		TransactionCount: report.TransactionCount,
		GeneratedAt:      report.GeneratedAt,
	}
}

// BalanceResponse is the body of GET /api/balance
type BalanceResponse struct {
	Balance Money `json:"balance"`
}

func NewBalanceResponse(balance decimal.Decimal) BalanceResponse {
	return BalanceResponse{Balance: NewMoney(balance)}
}
