package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chantd/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{Host: "127.0.0.1", Port: 8080},
		Storage:   structures.StorageConfig{Path: "/var/lib/chantd/chantd.db"},
		Snapshot: structures.SnapshotConfig{
			FilePath:     "/var/lib/chantd/chantd.snap",
			SaveInterval: 5 * time.Minute,
		},
		Stats:  structures.StatsConfig{TickInterval: time.Second},
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: "/var/log/chantd"},
	}
}

func TestCnfValidator_ValidConfig(t *testing.T) {
	assert.NoError(t, NewCnfValidator(validConfig()).Validate())
}

func TestCnfValidator_MissingHost(t *testing.T) {
	conf := validConfig()
	conf.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_InvalidPort(t *testing.T) {
	conf := validConfig()
	conf.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_MissingStoragePath(t *testing.T) {
	conf := validConfig()
	conf.Storage.Path = ""
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_InvalidLogLevel(t *testing.T) {
	conf := validConfig()
	conf.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_MissingTickInterval(t *testing.T) {
	conf := validConfig()
	conf.Stats.TickInterval = 0
	assert.Error(t, NewCnfValidator(conf).Validate())
}
