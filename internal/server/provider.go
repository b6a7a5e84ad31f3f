package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/matrix-screener/internal/config"
	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/metrics"
	"github.com/preston-bernstein/matrix-screener/internal/providers"
	"github.com/preston-bernstein/matrix-screener/internal/providers/fixture"
	"github.com/preston-bernstein/matrix-screener/internal/providers/openligadb"
)

const (
	providerOpenLigaDB = "openligadb"
	providerFixture    = "fixture"
)

// providerFactory assembles the configured provider behind the instrumentation wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: recorder}
}

func (f providerFactory) build(cfg config.Config) providers.MatchProvider {
	base, name := selectProvider(cfg, f.logger)
	return providers.NewInstrumentedProvider(base, f.logger, f.metrics, name)
}

// wrap instruments an injected provider, naming it after the configured provider.
func (f providerFactory) wrap(cfg config.Config, base providers.MatchProvider) providers.MatchProvider {
	name := normalizeProviderName(cfg.Provider)
	if name == "" {
		name = providerOpenLigaDB
	}
	return providers.NewInstrumentedProvider(base, f.logger, f.metrics, name)
}

// selectProvider returns the upstream for cfg.Provider and the name it is measured under.
// An unknown name falls back to the offline fixture.
func selectProvider(cfg config.Config, logger *slog.Logger) (providers.MatchProvider, string) {
	switch name := normalizeProviderName(cfg.Provider); name {
	case providerOpenLigaDB, "":
		return openligadb.NewClient(openligadb.Config{
			BaseURL: cfg.OpenLigaDB.BaseURL,
			Timeout: cfg.OpenLigaDB.Timeout,
			Logger:  logger,
		}), providerOpenLigaDB
	case providerFixture:
		return fixture.New(), providerFixture
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New(), providerFixture
	}
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
