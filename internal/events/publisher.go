package events

import (
	"context"

	"finance-tracker/internal/models"
)

// Publisher announces committed transactions to other systems.
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, tx *models.Transaction) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionCreated(context.Context, *models.Transaction) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
