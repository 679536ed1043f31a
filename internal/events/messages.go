// Package events publishes notifications about stored transactions.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

const EventTypeTransactionCreated = "transaction.created"

// TransactionCreated is emitted after a transaction has been committed.
type TransactionCreated struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	ID         uint64    `json:"id"`
	Date       string    `json:"date"`
	Month      string    `json:"month"`
	Type       string    `json:"type"`
	Amount     string    `json:"amount"`
	Category   string    `json:"category"`
	Note       string    `json:"note,omitempty"`
}

func NewTransactionCreated(tx *models.Transaction) *TransactionCreated {
	return &TransactionCreated{
		EventID:    uuid.NewString(),
		EventType:  EventTypeTransactionCreated,
		OccurredAt: time.Now().UTC(),
		ID:         tx.ID,
		Date:       tx.Date.String(),
		Month:      tx.Date.Time().Format("2006-01"),
		Type:       tx.Type,
		Amount:     tx.Amount.StringFixed(models.AmountScale),
		Category:   tx.Category,
		Note:       tx.Note,
	}
}

func (e *TransactionCreated) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionCreatedFromJSON(data []byte) (*TransactionCreated, error) {
	var e TransactionCreated
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal transaction created event: %w", err)
	}
	return &e, nil
}
