package models

import "github.com/shopspring/decimal"

// CategoryTotal contains aggregated expense data for one category
type CategoryTotal struct {
	Category         string          `json:"category"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AverageAmount    decimal.Decimal `json:"average_amount"`
}
