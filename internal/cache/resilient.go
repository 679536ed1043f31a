package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

type ResilientConfig struct {
	// Timeout bounds every call to the wrapped layer. Zero disables it.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold uint32
	// OpenTimeout is how long the circuit stays open before probing again.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of probes allowed while half-open.
	HalfOpenRequests uint32
}

func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Timeout:          500 * time.Millisecond,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 1,
	}
}

// ResilientLayer wraps a Layer with a per-call timeout and a circuit breaker.
// Cache misses count as successful calls.
type ResilientLayer struct {
	layer   Layer
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
}

func NewResilientLayer(layer Layer, cfg ResilientConfig) *ResilientLayer {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        layer.Name(),
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCacheMiss)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("cache circuit breaker state changed",
				"layer", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &ResilientLayer{
		layer:   layer,
		cb:      gobreaker.NewCircuitBreaker(settings),
		timeout: cfg.Timeout,
	}
}

func (rl *ResilientLayer) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := rl.withTimeout(ctx)
	defer cancel()

	result, err := rl.cb.Execute(func() (interface{}, error) {
		return rl.layer.Get(ctx, key)
	})
	if err != nil {
		return nil, rl.translate(ctx, err, "get")
	}

	data, _ := result.([]byte)
	return data, nil
}

func (rl *ResilientLayer) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := rl.withTimeout(ctx)
	defer cancel()

	_, err := rl.cb.Execute(func() (interface{}, error) {
		return nil, rl.layer.Set(ctx, key, value, ttl)
	})
	return rl.translate(ctx, err, "set")
}

func (rl *ResilientLayer) Delete(ctx context.Context, key string) error {
	ctx, cancel := rl.withTimeout(ctx)
	defer cancel()

	_, err := rl.cb.Execute(func() (interface{}, error) {
		return nil, rl.layer.Delete(ctx, key)
	})
	return rl.translate(ctx, err, "delete")
}

func (rl *ResilientLayer) Name() string {
	return rl.layer.Name()
}

func (rl *ResilientLayer) Close() error {
	return rl.layer.Close()
}

// State exposes the breaker state for health reporting.
func (rl *ResilientLayer) State() string {
	return rl.cb.State().String()
}

func (rl *ResilientLayer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if rl.timeout > 0 {
		return context.WithTimeout(ctx, rl.timeout)
	}
	return context.WithCancel(ctx)
}

func (rl *ResilientLayer) translate(ctx context.Context, err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCacheMiss):
		return ErrCacheMiss
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return ErrCircuitOpen
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return wrapError(ErrTimeout, rl.layer.Name(), operation)
	default:
		return wrapError(err, rl.layer.Name(), operation)
	}
}
