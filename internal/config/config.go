package config

import "fmt"

// Config holds runtime configuration for the server.
type Config struct {
	Port          string
	PollInterval  Duration
	Provider      string
	DefaultLeague string
	OpenLigaDB    OpenLigaDBConfig
	Animation     AnimationConfig
	CORS          CORSConfig
	Metrics       MetricsConfig
	Log           LogConfig
}

// LogConfig selects the root logger level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// When CONFIG_FILE names a YAML file, its values replace the built-in defaults
// and environment variables still take precedence.
func Load() (Config, error) {
	file, err := readFile(envOrDefault(envConfigFile, ""))
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Config{
		Port:          envOrDefault(envPort, stringOr(file.Port, defaultPort)),
		PollInterval:  durationEnvOrDefault(envPollInterval, durationOr(file.PollInterval, defaultPollInterval)),
		Provider:      envOrDefault(envProvider, stringOr(file.Provider, defaultProvider)),
		DefaultLeague: envOrDefault(envDefaultLeague, stringOr(file.DefaultLeague, defaultLeague)),
		OpenLigaDB:    loadOpenLigaDB(file.OpenLigaDB),
		Animation:     loadAnimation(file.Animation),
		CORS:          loadCORS(file.CORS),
		Metrics:       loadMetrics(file.Metrics),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, stringOr(file.Log.Level, defaultLogLevel)),
			Format: envOrDefault(envLogFormat, stringOr(file.Log.Format, defaultLogFormat)),
		},
	}, nil
}
