package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for the optional YAML file. Zero values mean "not set".
type fileConfig struct {
	Port          string         `yaml:"port"`
	PollInterval  time.Duration  `yaml:"poll_interval"`
	Provider      string         `yaml:"provider"`
	DefaultLeague string         `yaml:"default_league"`
	OpenLigaDB    fileOpenLigaDB `yaml:"openligadb"`
	Animation     fileAnimation  `yaml:"animation"`
	CORS          fileCORS       `yaml:"cors"`
	Metrics       fileMetrics    `yaml:"metrics"`
	Log           fileLog        `yaml:"log"`
}

type fileLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type fileOpenLigaDB struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type fileAnimation struct {
	Interval time.Duration `yaml:"interval"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
}

type fileCORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type fileMetrics struct {
	Enabled      *bool  `yaml:"enabled"`
	Port         string `yaml:"port"`
	OtlpEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	OtlpInsecure *bool  `yaml:"otlp_insecure"`
}

func readFile(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

func intOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}
