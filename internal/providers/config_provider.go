package providers

import (
	"chantd/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CHANTD_LOG_LEVEL")
	viper.BindEnv("storage.path", "CHANTD_DB_PATH")
	viper.BindEnv("stats.tickInterval", "CHANTD_TICK_INTERVAL")
	viper.BindEnv("snapshot.saveInterval", "CHANTD_SNAPSHOT_INTERVAL")
	viper.BindEnv("cache.enabled", "CHANTD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CHANTD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ChantStatsDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	if conf.Stats.HistoryDays <= 0 {
		conf.Stats.HistoryDays = 7
	}
	if conf.Stats.MaxHistoryDays <= 0 {
		conf.Stats.MaxHistoryDays = 365
	}
	if conf.Stats.MaxAudioBytes <= 0 {
		conf.Stats.MaxAudioBytes = 10 << 20
	}

	return &conf, nil
}
