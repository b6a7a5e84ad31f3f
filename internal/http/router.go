package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/preston-bernstein/matrix-screener/internal/http/handlers"
	"github.com/preston-bernstein/matrix-screener/internal/http/middleware"
	"github.com/preston-bernstein/matrix-screener/internal/metrics"
)

// RouterConfig holds the optional pieces of the router.
type RouterConfig struct {
	// Stream serves /ws when set.
	Stream nethttp.Handler
	// AllowedOrigins feeds the CORS policy; empty allows every origin.
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
}

// NewRouter registers every route and wraps them with CORS and request logging.
func NewRouter(h *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = nethttp.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/", h.Page).Methods(nethttp.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/leagues", h.Leagues).Methods(nethttp.MethodGet)
	api.HandleFunc("/leagues/{id}/select", h.SelectLeague).Methods(nethttp.MethodPost)
	api.HandleFunc("/board", h.Board).Methods(nethttp.MethodGet)
	api.HandleFunc("/refresh", h.Refresh).Methods(nethttp.MethodPost)

	if cfg.Stream != nil {
		r.Handle("/ws", cfg.Stream).Methods(nethttp.MethodGet)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	return middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, c.Handler(r))
}
