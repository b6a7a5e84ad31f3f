package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/leagues"
	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/poller"
	"github.com/preston-bernstein/matrix-screener/internal/render"
)

type nowFunc func() time.Time

// BoardReader returns the current board.
type BoardReader interface {
	Board() board.Board
}

// Controller triggers load cycles.
type Controller interface {
	Refresh(ctx context.Context) board.Board
	SelectLeague(ctx context.Context, id string) (board.Board, error)
	League() leagues.League
}

// Handler wires HTTP routes to the board and the poller.
type Handler struct {
	boards   BoardReader
	control  Controller
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(boards BoardReader, control Controller, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		boards:   boards,
		control:  control,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the poller has loaded recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Page renders the board as HTML.
func (h *Handler) Page(w nethttp.ResponseWriter, r *nethttp.Request) {
	view := render.Board(h.boards.Board(), h.now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, view); err != nil {
		logging.Error(loggerFromContext(r, h.logger), "failed to render page", err)
	}
}

// LeaguesResponse lists the selectable leagues.
type LeaguesResponse struct {
	Leagues  []leagues.League `json:"leagues"`
	Selected string           `json:"selected"`
}

// Leagues returns the fixed league set and the current selection.
func (h *Handler) Leagues(w nethttp.ResponseWriter, r *nethttp.Request) {
	resp := LeaguesResponse{Leagues: leagues.All(), Selected: h.boards.Board().League.ID}
	if h.control != nil {
		resp.Selected = h.control.League().ID
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Board returns the rendered board.
func (h *Handler) Board(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, render.Board(h.boards.Board(), h.now()), h.logger)
}

// Refresh runs a load cycle for the selected league.
func (h *Handler) Refresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.control == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "poller not configured", h.logger)
		return
	}
	b := h.control.Refresh(r.Context())
	logging.Info(loggerFromContext(r, h.logger), "board refreshed", logging.FieldLeague, b.League.ID, "status", b.Status)
	h.respondLoaded(w, r, b)
}

// SelectLeague switches to the league named in the path and loads it.
func (h *Handler) SelectLeague(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.control == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "poller not configured", h.logger)
		return
	}
	id := mux.Vars(r)["id"]
	b, err := h.control.SelectLeague(r.Context(), id)
	if errors.Is(err, leagues.ErrUnknownLeague) {
		writeError(w, r, nethttp.StatusNotFound, "league not found", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, err.Error(), h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "league selected", logging.FieldLeague, b.League.ID, "status", b.Status)
	h.respondLoaded(w, r, b)
}

// NotFound answers unknown routes with the JSON error envelope.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// respondLoaded sends form posts from the page back to it and API callers the rendered view.
func (h *Handler) respondLoaded(w nethttp.ResponseWriter, r *nethttp.Request, b board.Board) {
	if wantsHTML(r) {
		nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
		return
	}
	writeJSON(w, nethttp.StatusAccepted, render.Board(b, h.now()), h.logger)
}

func wantsHTML(r *nethttp.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") &&
		strings.Contains(r.Header.Get("Accept"), "text/html")
}
