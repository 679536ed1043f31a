// Package cache holds the byte-oriented cache layers used for computed
// monthly reports.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCacheMiss is returned when a key does not exist or has expired
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrTimeout is returned when a cache operation exceeds its deadline
	ErrTimeout = errors.New("cache: operation timeout")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls
	ErrCircuitOpen = errors.New("cache: circuit breaker open")

	ErrInvalidKey = errors.New("cache: invalid key")
)

// Layer is a key/value cache. A ttl of zero stores the value without expiry.
type Layer interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Name() string
	Close() error
}

// IsMiss reports whether err means the key is absent.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// ClassifyError returns a short label for metrics.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrCacheMiss):
		return "miss"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "backend"
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

func wrapError(err error, layer, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("cache layer %s %s: %w", layer, operation, err)
}
