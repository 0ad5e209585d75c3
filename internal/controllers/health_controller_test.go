package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantd/internal/services"
	"chantd/internal/testutil"
)

func TestHealth_ReportsServiceState(t *testing.T) {
	service := services.NewStatsService(testutil.NewMockStore(), &testutil.MockLogger{})
	service.Increment(httptest.NewRequest(http.MethodGet, "/", nil).Context(), 108)

	hc := NewHealthController(service)
	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 108, resp.TotalCount)
	assert.Equal(t, 1, resp.Streak)
	assert.False(t, resp.PendingSync)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(services.NewStatsService(testutil.NewMockStore(), &testutil.MockLogger{}))

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m42s", formatDuration(42*time.Second))
	assert.Equal(t, "1h1m5s", formatDuration(time.Hour+time.Minute+5*time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
