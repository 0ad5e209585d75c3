package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chantd/internal/structures"
)

func TestHttpStatusBucket(t *testing.T) {
	cases := map[int]string{
		100: "1xx",
		200: "2xx",
		201: "2xx",
		301: "3xx",
		400: "4xx",
		404: "4xx",
		500: "5xx",
		503: "5xx",
	}
	for code, want := range cases {
		assert.Equal(t, want, httpStatusBucket(code), "status %d", code)
	}
}

func TestNewMetricsProvider_DisabledReturnsNoop(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: false}}

	m := NewMetricsProvider(conf, nil)
	_, isNoop := m.(*noopMetrics)
	assert.True(t, isNoop)

	// Noop methods must be safe without any backing collectors.
	m.IncRequestsTotal("/count", 201)
	m.ObserveRequestDuration("/count", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.AddChants(5)
}
