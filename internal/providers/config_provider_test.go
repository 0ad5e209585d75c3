package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantd/internal/structures"
)

const testConfigYaml = `webServer:
  host: 127.0.0.1
  port: 8080
storage:
  path: /var/lib/chantd/chantd.db
snapshot:
  filePath: /var/lib/chantd/chantd.snap
  saveInterval: 5m
stats:
  tickInterval: 1s
logger:
  level: info
  mode: 420
  dir: /var/log/chantd
cache:
  enabled: true
  size: 16
metrics:
  enabled: true
`

func TestNewConfigProvider_LoadsYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chantd-test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYaml), 0644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "ChantStatsDaemon", conf.AppName)
	assert.Equal(t, path, conf.Path)
	assert.True(t, conf.Debug)

	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 8080, conf.WebServer.Port)
	assert.Equal(t, "/var/lib/chantd/chantd.db", conf.Storage.Path)
	assert.Equal(t, "/var/lib/chantd/chantd.snap", conf.Snapshot.FilePath)
	assert.Equal(t, 5*time.Minute, conf.Snapshot.SaveInterval)
	assert.Equal(t, time.Second, conf.Stats.TickInterval)
	assert.Equal(t, uint32(420), conf.Logger.Mode)
	assert.True(t, conf.Cache.Enabled)
	assert.Equal(t, 16, conf.Cache.Size)

	// Unset optional fields fall back to their defaults.
	assert.Equal(t, 7, conf.Stats.HistoryDays)
	assert.Equal(t, 365, conf.Stats.MaxHistoryDays)
	assert.Equal(t, int64(10<<20), conf.Stats.MaxAudioBytes)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chantd-absent.yaml")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chantd-invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("webServer:\n  port: 8080\n"), 0644))

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
