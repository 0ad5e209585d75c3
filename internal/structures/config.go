package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Path string `yaml:"path" validate:"required|unixPath"`
}

type SnapshotConfig struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type StatsConfig struct {
	TickInterval   time.Duration `yaml:"tickInterval" validate:"required|min:1"`
	HistoryDays    int           `yaml:"historyDays"`
	MaxHistoryDays int           `yaml:"maxHistoryDays"`
	MaxAudioBytes  int64         `yaml:"maxAudioBytes"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Stats     StatsConfig    `yaml:"stats"`
	WebServer Server         `yaml:"webServer"`
	Storage   StorageConfig  `yaml:"storage"`
	Snapshot  SnapshotConfig `yaml:"snapshot"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
