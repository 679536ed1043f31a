package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

const (
	reportKeyPrefix  = "report:"
	versionKeyPrefix = "report:version:"
)

// ReportCache stores computed monthly reports keyed by a per-month version
// token. Appends replace the token, so a report computed before an append is
// unreachable afterwards. Readers must take the version before they query the
// store.
//
// The local generation counter covers the same contract inside one process
// and keys request coalescing when no cache layer is configured. A month whose
// token could not be replaced is not read from the layer by this process until
// a later token write succeeds.
type ReportCache struct {
	layer cache.Layer
	ttl   time.Duration

	mu          sync.Mutex
	generations map[string]uint64
	// unsynced holds the newest generation per month whose token write failed.
	unsynced map[string]uint64
}

// NewReportCache wraps layer. A nil layer disables storage but keeps the
// generation counters.
func NewReportCache(layer cache.Layer, ttl time.Duration) *ReportCache {
	return &ReportCache{
		layer:       layer,
		ttl:         ttl,
		generations: make(map[string]uint64),
		unsynced:    make(map[string]uint64),
	}
}

// Enabled reports whether reports are stored anywhere.
func (c *ReportCache) Enabled() bool {
	return c.layer != nil
}

// Version returns the local generation and the shared token for month,
// creating the token when it is missing. The token is empty when the cache is
// disabled; err is set when the layer failed.
func (c *ReportCache) Version(ctx context.Context, month string) (generation string, token string, err error) {
	gen, pending := c.state(month)
	generation = strconv.FormatUint(gen, 10)
	if c.layer == nil {
		return generation, "", nil
	}
	if pending {
		// The stored token may predate a committed write.
		token, err = c.rotate(ctx, month, gen)
		if err != nil {
			return generation, "", err
		}
		return generation, token, nil
	}

	raw, err := c.layer.Get(ctx, versionKeyPrefix+month)
	if err == nil && len(raw) > 0 {
		return generation, string(raw), nil
	}
	if err != nil && !cache.IsMiss(err) {
		return generation, "", err
	}

	token = uuid.NewString()
	if err := c.layer.Set(ctx, versionKeyPrefix+month, []byte(token), 0); err != nil {
		return generation, "", err
	}
	return generation, token, nil
}

// Get returns the report cached under month and token.
func (c *ReportCache) Get(ctx context.Context, month, token string) (*models.MonthlyReport, error) {
	if c.layer == nil || token == "" {
		return nil, cache.ErrCacheMiss
	}

	raw, err := c.layer.Get(ctx, reportKey(month, token))
	if err != nil {
		return nil, err
	}

	var report models.MonthlyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

func (c *ReportCache) Put(ctx context.Context, month, token string, report *models.MonthlyReport) error {
	if c.layer == nil || token == "" {
		return nil
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return c.layer.Set(ctx, reportKey(month, token), raw, c.ttl)
}

// Invalidate makes every report cached for month unreachable. Call it after
// the write that changed the month has committed.
func (c *ReportCache) Invalidate(ctx context.Context, month string) error {
	c.mu.Lock()
	c.generations[month]++
	gen := c.generations[month]
	c.mu.Unlock()

	if c.layer == nil {
		return nil
	}
	_, err := c.rotate(ctx, month, gen)
	return err
}

// rotate writes a fresh token for month. A token written at generation gen
// postdates every write counted up to gen, so it clears failures recorded at
// or below gen.
func (c *ReportCache) rotate(ctx context.Context, month string, gen uint64) (string, error) {
	token := uuid.NewString()
	err := c.layer.Set(ctx, versionKeyPrefix+month, []byte(token), 0)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if gen > c.unsynced[month] {
			c.unsynced[month] = gen
		}
		return "", err
	}
	if failed, ok := c.unsynced[month]; ok && failed <= gen {
		delete(c.unsynced, month)
	}
	return token, nil
}

func (c *ReportCache) state(month string) (generation uint64, pending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, pending = c.unsynced[month]
	return c.generations[month], pending
}

func reportKey(month, token string) string {
	return reportKeyPrefix + month + ":" + token
}
