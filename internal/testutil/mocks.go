package testutil

import (
	"context"
	"sync"
	"time"

	"chantd/internal/models"
	"chantd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any recorded entry carries the given level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockStore implements storage.StoreInterface with in-memory maps and
// injectable per-operation failures.
type MockStore struct {
	mu       sync.Mutex
	Settings map[string]any
	Daily    map[string]int
	Audio    map[string][]byte

	SetSettingErr    error
	SaveDailyStatErr error
	GetAllErr        error
}

func NewMockStore() *MockStore {
	return &MockStore{
		Settings: make(map[string]any),
		Daily:    make(map[string]int),
		Audio:    make(map[string][]byte),
	}
}

func (m *MockStore) GetSetting(_ context.Context, key string, def any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if val, ok := m.Settings[key]; ok && val != nil {
		return val, nil
	}
	return def, nil
}

func (m *MockStore) SetSetting(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetSettingErr != nil {
		return m.SetSettingErr
	}
	m.Settings[key] = value
	return nil
}

func (m *MockStore) GetSettingJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Settings[key]
	if !ok || val == nil {
		return false, nil
	}
	switch dst := out.(type) {
	case *[]string:
		if src, ok := val.([]string); ok {
			*dst = append([]string(nil), src...)
			return true, nil
		}
	case *models.TimeBundle:
		if src, ok := val.(*models.TimeBundle); ok {
			*dst = *src.Clone()
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) ResetSettings(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Settings = make(map[string]any)
	return nil
}

func (m *MockStore) SaveDailyStat(_ context.Context, date string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveDailyStatErr != nil {
		return m.SaveDailyStatErr
	}
	m.Daily[date] = count
	return nil
}

func (m *MockStore) GetAllDailyStats(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllErr != nil {
		return nil, m.GetAllErr
	}
	out := make(map[string]int, len(m.Daily))
	for k, v := range m.Daily {
		out[k] = v
	}
	return out, nil
}

func (m *MockStore) SaveAudio(_ context.Context, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Audio[id] = append([]byte(nil), data...)
	return nil
}

func (m *MockStore) GetAudio(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Audio[id]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MockStore) DeleteAudio(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Audio, id)
	return nil
}

func (m *MockStore) Close() error { return nil }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                  sync.Mutex
	Requests            int
	CacheHits           int
	CacheMisses         int
	Chants              int
	PersistObservations int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistObservations++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) AddChants(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Chants += count
}
