package config

import "time"

const (
	envConfigFile      = "CONFIG_FILE"
	envPort            = "PORT"
	envPollInterval    = "POLL_INTERVAL"
	envProvider        = "PROVIDER"
	envDefaultLeague   = "DEFAULT_LEAGUE"
	envOpenLigaBaseURL = "OPENLIGADB_BASE_URL"
	envOpenLigaTimeout = "OPENLIGADB_TIMEOUT"
	envAnimInterval    = "ANIMATION_INTERVAL"
	envAnimWidth       = "ANIMATION_WIDTH"
	envAnimHeight      = "ANIMATION_HEIGHT"
	envCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	defaultServiceName = "matrix-screener"
	defaultPort        = "4000"
	defaultProvider    = "openligadb"
	defaultLeague      = "bl1"
	defaultMetricsPort = "9090"
	defaultOpenLigaURL = "https://api.openligadb.de"
	defaultAnimWidth   = 1280
	defaultAnimHeight  = 720
	defaultCORSOrigins = "*"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"

	defaultPollInterval = Duration(time.Minute)
	defaultOpenLigaWait = 10 * Duration(time.Second)
	defaultAnimInterval = 35 * Duration(time.Millisecond)
)
