package cache

import (
	"context"
	"sync"
	"time"
)

const defaultCleanupInterval = time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a process-local Layer with TTL expiry. Expired entries are
// hidden on read and swept by a background goroutine.
type MemoryCache struct {
	mu          sync.RWMutex
	data        map[string]memoryEntry
	stopCleanup chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

// NewMemoryCache starts a cache that sweeps expired entries every
// cleanupInterval (one minute when zero).
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	c := &MemoryCache{
		data:        make(map[string]memoryEntry),
		stopCleanup: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanup(cleanupInterval)

	return c
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return nil, ErrCacheMiss
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := memoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.data[key] = e
	c.mu.Unlock()

	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()

	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *MemoryCache) Name() string {
	return "memory"
}

func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
	})
	c.wg.Wait()
	return nil
}

func (c *MemoryCache) cleanup(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.data {
		if e.expired(now) {
			delete(c.data, key)
		}
	}
}
