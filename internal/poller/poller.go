package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/leagues"
	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/metrics"
	"github.com/preston-bernstein/matrix-screener/internal/providers"
)

const defaultInterval = time.Minute

// Load triggers, used for logging.
const (
	TriggerStartup = "startup"
	TriggerTimer   = "timer"
	TriggerRefresh = "refresh"
	TriggerLeague  = "league"
)

// BoardStore is where load cycles publish the board.
type BoardStore interface {
	Board() board.Board
	ReplaceBoard(b board.Board)
}

// Poller loads the selected league's current matchday on an interval and on demand.
//
// Every load cancels the one still in flight, and only the newest load may
// publish, so a slow response never overwrites a newer board.
type Poller struct {
	provider providers.MatchProvider
	store    BoardStore
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time
	season   int

	leagueMu sync.RWMutex
	league   leagues.League

	cycleMu  sync.Mutex
	gen      uint64
	inFlight context.CancelFunc

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller for league and seeds store with a loading board.
// The season is derived once from the current date and kept for the poller's lifetime.
func New(provider providers.MatchProvider, store BoardStore, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, league leagues.League) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if league.ID == "" {
		league = leagues.Default()
	}
	p := &Poller{
		provider: provider,
		store:    store,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		league:   league,
		done:     make(chan struct{}),
	}
	p.season = matches.SeasonFor(p.now())
	if store != nil {
		store.ReplaceBoard(board.New(league, p.season))
	}
	return p
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	ticker := time.NewTicker(p.interval)
	p.ticker = ticker
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "poller started",
			slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()),
			slog.Int(logging.FieldSeason, p.season),
		)
		p.Load(ctx, TriggerStartup)

		for {
			select {
			case <-ctx.Done():
				p.shutdown()
				return
			case <-p.done:
				p.shutdown()
				return
			case <-ticker.C:
				p.Load(ctx, TriggerTimer)
			}
		}
	}()
}

// Stop halts the polling loop and cancels any load in flight.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
		p.cancelInFlight()
	})
	return nil
}

// Refresh runs a load for the current league and returns the resulting board.
// The load outlives ctx's cancellation; only a newer load or Stop cancels it.
func (p *Poller) Refresh(ctx context.Context) board.Board {
	return p.Load(context.WithoutCancel(ctx), TriggerRefresh)
}

// SelectLeague switches the board to the league with id and loads it.
// Unknown ids leave the selection unchanged. Like Refresh, the load outlives ctx.
func (p *Poller) SelectLeague(ctx context.Context, id string) (board.Board, error) {
	league, err := leagues.Lookup(id)
	if err != nil {
		return board.Board{}, err
	}
	p.leagueMu.Lock()
	p.league = league
	p.leagueMu.Unlock()

	return p.Load(context.WithoutCancel(ctx), TriggerLeague), nil
}

// League returns the selected league.
func (p *Poller) League() leagues.League {
	p.leagueMu.RLock()
	defer p.leagueMu.RUnlock()
	return p.league
}

// Season returns the season year used for every load.
func (p *Poller) Season() int {
	return p.season
}

// Load fetches the current matchday, then its matches, and publishes the outcome.
// Failures are logged and published as an error board; they are never returned.
// The returned board is the one this load published, or the current board when
// a newer load superseded it.
func (p *Poller) Load(ctx context.Context, trigger string) board.Board {
	gen, cycleCtx := p.beginCycle(ctx)
	defer p.endCycle(gen)

	start := time.Now()
	p.recordAttempt(start)

	league := p.League()
	base := p.currentBoard()
	if base.League.ID != league.ID {
		base = board.New(league, p.season)
	}
	base.Season = p.season
	loading := base
	loading.Status = board.StatusLoading
	loading.Error = ""
	p.commit(gen, loading)

	next, err := p.fetch(cycleCtx, base, league)

	attrs := []any{
		slog.String(logging.FieldLeague, league.ID),
		slog.String(logging.FieldTrigger, trigger),
		slog.Uint64(logging.FieldGeneration, gen),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	}

	if !p.commit(gen, next) {
		logging.Info(p.logger, "poller load superseded", attrs...)
		return p.currentBoard()
	}
	p.metrics.RecordPollerCycle(league.ID, time.Since(start), err)

	if err != nil {
		logging.Error(p.logger, "poller load failed", err, attrs...)
		p.recordFailure(err, start)
		return next
	}

	p.recordSuccess(start)
	logging.Info(p.logger, "poller refreshed matches",
		append(attrs,
			slog.Int(logging.FieldMatchday, next.Matchday),
			slog.Int(logging.FieldCount, len(next.Matches)),
		)...,
	)
	return next
}

func (p *Poller) fetch(ctx context.Context, base board.Board, league leagues.League) (board.Board, error) {
	if p.provider == nil {
		return p.failed(base, providers.ErrProviderUnavailable), providers.ErrProviderUnavailable
	}

	md, err := p.provider.CurrentMatchday(ctx, league.APISlug)
	if err != nil {
		return p.failed(base, err), err
	}

	ms, err := p.provider.FetchMatches(ctx, league.APISlug, p.season, md.Number)
	if err != nil {
		return p.failed(base, err), err
	}
	if ms == nil {
		ms = []matches.Match{}
	}

	return board.Board{
		League:     league,
		Season:     p.season,
		Matchday:   md.Number,
		Matches:    ms,
		Status:     board.StatusOnline,
		LastUpdate: p.now(),
	}, nil
}

// failed keeps the last good matches and marks the board as errored.
func (p *Poller) failed(base board.Board, err error) board.Board {
	base.Status = board.StatusError
	base.Error = errorMessage(err)
	return base
}

func errorMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}

func (p *Poller) beginCycle(parent context.Context) (uint64, context.Context) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	if p.inFlight != nil {
		p.inFlight()
	}
	ctx, cancel := context.WithCancel(parent)
	p.gen++
	p.inFlight = cancel
	return p.gen, ctx
}

func (p *Poller) endCycle(gen uint64) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	if gen == p.gen && p.inFlight != nil {
		p.inFlight()
		p.inFlight = nil
	}
}

func (p *Poller) cancelInFlight() {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	if p.inFlight != nil {
		p.inFlight()
		p.inFlight = nil
	}
}

// commit publishes b only while gen is the newest load.
func (p *Poller) commit(gen uint64, b board.Board) bool {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	if gen != p.gen {
		return false
	}
	if p.store != nil {
		p.store.ReplaceBoard(b)
	}
	return true
}

func (p *Poller) currentBoard() board.Board {
	if p.store == nil {
		return board.New(p.League(), p.season)
	}
	return p.store.Board()
}

func (p *Poller) shutdown() {
	p.stopTicker()
	p.cancelInFlight()
	logging.Info(p.logger, "poller stopped")
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.MatchProvider {
	return p.provider
}
