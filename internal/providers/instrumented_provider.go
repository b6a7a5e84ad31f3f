package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/metrics"
)

// instrumentedProvider records attempts, latency and rate limits for every upstream call.
// It never retries; a failed call fails the whole load cycle.
type instrumentedProvider struct {
	inner   MatchProvider
	logger  *slog.Logger
	metrics *metrics.Recorder
	name    string
}

// NewInstrumentedProvider wraps inner so each call is measured under name.
func NewInstrumentedProvider(inner MatchProvider, logger *slog.Logger, recorder *metrics.Recorder, name string) MatchProvider {
	if name == "" {
		name = "provider"
	}
	return &instrumentedProvider{
		inner:   inner,
		logger:  logger,
		metrics: recorder,
		name:    name,
	}
}

func (p *instrumentedProvider) CurrentMatchday(ctx context.Context, leagueSlug string) (matches.Matchday, error) {
	if p.inner == nil {
		return matches.Matchday{}, ErrProviderUnavailable
	}
	start := time.Now()
	md, err := p.inner.CurrentMatchday(ctx, leagueSlug)
	p.observe(ctx, "current matchday", leagueSlug, start, err)
	return md, err
}

func (p *instrumentedProvider) FetchMatches(ctx context.Context, leagueSlug string, season, matchday int) ([]matches.Match, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := time.Now()
	ms, err := p.inner.FetchMatches(ctx, leagueSlug, season, matchday)
	p.observe(ctx, "matches", leagueSlug, start, err,
		slog.Int(logging.FieldSeason, season),
		slog.Int(logging.FieldMatchday, matchday),
	)
	return ms, err
}

// Unwrap exposes the wrapped provider.
func (p *instrumentedProvider) Unwrap() MatchProvider {
	return p.inner
}

func (p *instrumentedProvider) observe(ctx context.Context, op, leagueSlug string, start time.Time, err error, attrs ...any) {
	elapsed := time.Since(start)
	p.metrics.RecordProviderAttempt(p.name, elapsed, err)
	if fe, ok := AsFetchError(err); ok && fe.RateLimited() {
		p.metrics.RecordRateLimit(p.name, fe.RetryAfter)
	}

	args := append([]any{
		slog.String(logging.FieldProvider, p.name),
		slog.String("op", op),
		slog.String(logging.FieldLeague, leagueSlug),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	}, attrs...)
	logger := logging.FromContext(ctx, p.logger)
	if err != nil {
		logging.Warn(logger, "provider call failed", append(args, slog.Any(logging.FieldError, err))...)
		return
	}
	logging.Debug(logger, "provider call complete", args...)
}
