package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Money is an amount that encodes as a JSON number with two decimals. It
// decodes from either a JSON number or a numeric string.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(models.AmountScale)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	if err := m.Decimal.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	return nil
}

// CategoryRef is a category name. Clients send it either as a string or as
// an object with a name field; it is always returned as a string.
type CategoryRef string

func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
		return nil
	case len(data) > 0 && data[0] == '{':
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("category object must have a string name: %w", err)
		}
		*c = CategoryRef(strings.TrimSpace(obj.Name))
		return nil
	default:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("category must be a string or an object with a name: %w", err)
		}
		*c = CategoryRef(strings.TrimSpace(name))
		return nil
	}
}

// CreateTransactionRequest is the body of POST /api/transactions
type CreateTransactionRequest struct {
	Date     string      `json:"date" validate:"required,calendar_date"`
	Type     string      `json:"type" validate:"required,transaction_type"`
	Amount   *Money      `json:"amount" validate:"required,money_amount"`
	Category CategoryRef `json:"category" validate:"category_name"`
	Note     string      `json:"note" validate:"max=1000"`
}

// ToModel converts the request into an unsaved transaction.
func (r *CreateTransactionRequest) ToModel() (*models.Transaction, error) {
	date, err := calendar.Parse(r.Date)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Date:     date,
		Type:     r.Type,
		Category: string(r.Category),
		Note:     r.Note,
	}
	if r.Amount != nil {
		tx.Amount = r.Amount.Decimal
	}
	tx.Normalize()
	return tx, nil
}

// TransactionResponse is a stored transaction as returned by the API
type TransactionResponse struct {
	ID        uint64    `json:"id"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	Amount    Money     `json:"amount"`
	Category  string    `json:"category"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		Date:      tx.Date.String(),
		Type:      tx.Type,
		Amount:    NewMoney(tx.Amount),
		Category:  tx.Category,
		Note:      tx.Note,
		CreatedAt: tx.CreatedAt,
	}
}

// NewTransactionListResponse never returns nil, so an empty range encodes as [].
func NewTransactionListResponse(transactions []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, NewTransactionResponse(&transactions[i]))
	}
	return out
}

// SeedResponse is returned by the development seed endpoint
type SeedResponse struct {
	Created      int                   `json:"created"`
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	Transactions []TransactionResponse `json:"transactions"`
}
