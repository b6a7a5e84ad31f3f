package server

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	appboard "github.com/preston-bernstein/matrix-screener/internal/app/board"
	"github.com/preston-bernstein/matrix-screener/internal/config"
	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/leagues"
	httpserver "github.com/preston-bernstein/matrix-screener/internal/http"
	"github.com/preston-bernstein/matrix-screener/internal/http/handlers"
	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/matrix"
	"github.com/preston-bernstein/matrix-screener/internal/metrics"
	"github.com/preston-bernstein/matrix-screener/internal/poller"
	"github.com/preston-bernstein/matrix-screener/internal/providers"
	"github.com/preston-bernstein/matrix-screener/internal/render"
	"github.com/preston-bernstein/matrix-screener/internal/store"
	"github.com/preston-bernstein/matrix-screener/internal/stream"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.BoardStore
	boards        *appboard.Service
	hub           *stream.Hub
	animator      Animator
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	league := resolveLeague(cfg.DefaultLeague, logger)
	boardStore := store.NewBoardStore(board.New(league, 0))
	boards := appboard.NewService(boardStore)

	rain := matrix.NewRain(cfg.Animation.Width, cfg.Animation.Height, nil)
	hub := buildHub(cfg, boards, rain, logger, recorder)
	boards.Subscribe(func(b board.Board) {
		hub.PublishBoard(render.Board(b, time.Now()))
	})

	plr := poller.New(provider, boards, logger, recorder, cfg.PollInterval, league)
	anim := matrix.NewAnimator(rain, hub, logger, recorder, cfg.Animation.Interval)
	httpSrv := buildHTTPServer(cfg, boards, plr, hub, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         boardStore,
		boards:        boards,
		hub:           hub,
		animator:      anim,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, boards *appboard.Service, httpSrv httpServer, plr Poller, anim Animator) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		boards:     boards,
		animator:   anim,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func resolveLeague(id string, logger *slog.Logger) leagues.League {
	if id == "" {
		return leagues.Default()
	}
	league, err := leagues.Lookup(id)
	if err != nil {
		logging.Warn(logger, "unknown default league, using bl1", slog.String(logging.FieldLeague, id))
		return leagues.Default()
	}
	return league
}

func buildHub(cfg config.Config, boards *appboard.Service, rain *matrix.Rain, logger *slog.Logger, recorder *metrics.Recorder) *stream.Hub {
	return stream.NewHub(logger, recorder, stream.Options{
		OnResize: rain.Resize,
		Initial: func() (stream.Message, bool) {
			return stream.Message{Type: stream.TypeBoard, Data: render.Board(boards.Board(), time.Now())}, true
		},
		CheckOrigin: originChecker(cfg.CORS.AllowedOrigins),
	})
}

// originChecker allows every origin when none are configured, and same-host
// requests without an Origin header otherwise.
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

func buildHTTPServer(cfg config.Config, boards *appboard.Service, plr Poller, hub *stream.Hub, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	var control handlers.Controller
	if plr != nil {
		statusFn = plr.Status
		control = plr
	}

	handler := handlers.NewHandler(boards, control, logger, statusFn)
	routerCfg := httpserver.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
		Metrics:        recorder,
	}
	if hub != nil {
		routerCfg.Stream = hub
	}
	router := httpserver.NewRouter(handler, routerCfg)

	return newNetHTTPServer(":"+cfg.Port, router)
}

// Run starts the stream hub, poller, animator and HTTP server, then waits for
// context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	if s.hub != nil {
		go s.hub.Run(ctx)
	}
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.animator != nil {
		s.animator.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any(logging.FieldError, err))
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any(logging.FieldError, err))
		}
	}

	if s.animator != nil {
		if err := s.animator.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop animator", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any(logging.FieldError, err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(":"+recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", slog.Any(logging.FieldError, err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Boards exposes the board service (useful for tests).
func (s *Server) Boards() *appboard.Service {
	return s.boards
}
