package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ExportConfig holds export output settings.
type ExportConfig struct {
	OutputDir string `json:"outputDir" mapstructure:"outputDir"`
}

// Load reads configuration from a JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("export.outputDir", "./exports")

	viper.SetDefault("sampler.points", 1000)
	viper.SetDefault("sampler.kappa", 2.0)
	viper.SetDefault("search.radiusMultiplier", 2.0)

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "sarscope")
	viper.SetDefault("db.sqlitePath", "./sarscope.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "sarscope-metrics")

	viper.SetDefault("tracker.enabled", false)
	viper.SetDefault("tracker.serverUrl", "http://localhost:5001")
	viper.SetDefault("tracker.apiKey", "")

	viper.SetDefault("monitor.enabled", false)
	viper.SetDefault("monitor.stateDir", ".")

	viper.SetDefault("stream.enabled", false)
	viper.SetDefault("stream.url", "ws://localhost:5010/ws")
	viper.SetDefault("stream.secret", "")

	viper.SetConfigName("sarscope.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetExportConfig returns the export output settings.
func GetExportConfig() ExportConfig {
	return ExportConfig{
		OutputDir: viper.GetString("export.outputDir"),
	}
}
