package cache

import (
	"testing"
	"time"

	"finance-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		layer, err := NewFromConfig(&config.Config{Cache: config.CacheConfig{Backend: config.CacheBackendNone}})
		require.NoError(t, err)
		assert.Nil(t, layer)
	})

	t.Run("memory", func(t *testing.T) {
		layer, err := NewFromConfig(&config.Config{Cache: config.CacheConfig{
			Backend: config.CacheBackendMemory,
			Timeout: 100 * time.Millisecond,
		}})
		require.NoError(t, err)
		require.NotNil(t, layer)
		defer layer.Close()

		resilient, ok := layer.(*ResilientLayer)
		require.True(t, ok)
		assert.Equal(t, "memory", resilient.Name())
		assert.Equal(t, 100*time.Millisecond, resilient.timeout)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewFromConfig(&config.Config{Cache: config.CacheConfig{Backend: "memcached"}})
		assert.Error(t, err)
	})
}
