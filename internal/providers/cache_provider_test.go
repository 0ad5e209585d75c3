package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantd/internal/structures"
)

// nopLogger satisfies Logger for provider tests.
type nopLogger struct{}

func (nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Close()                                        {}

func cacheConfig(enabled bool, sizeMB int) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{Enabled: enabled, Size: sizeMB},
		Stats: structures.StatsConfig{TickInterval: time.Second},
	}
}

func TestCacheProvider_SetGet(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1), nopLogger{})

	cache.Set("summary", []byte(`{"total":1}`))
	val, ok := cache.Get("summary")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"total":1}`), val)
}

func TestCacheProvider_MissingKey(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1), nopLogger{})

	_, ok := cache.Get("nothing")
	assert.False(t, ok)
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(false, 1), nopLogger{})

	cache.Set("summary", []byte("data"))
	_, ok := cache.Get("summary")
	assert.False(t, ok)
}

func TestCacheProvider_ZeroSizeIsNoop(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 0), nopLogger{})

	cache.Set("summary", []byte("data"))
	_, ok := cache.Get("summary")
	assert.False(t, ok)
}

func TestCacheProvider_OverwriteKey(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1), nopLogger{})

	cache.Set("streak", []byte("1"))
	cache.Set("streak", []byte("2"))
	val, ok := cache.Get("streak")
	require.True(t, ok)
	assert.Equal(t, []byte("2"), val)
}

func TestUnsafeStringToBytes(t *testing.T) {
	assert.Nil(t, unsafeStringToBytes(""))
	assert.Equal(t, []byte("summary"), unsafeStringToBytes("summary"))
}
