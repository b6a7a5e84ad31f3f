package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/leagues"
	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
	"github.com/preston-bernstein/matrix-screener/internal/poller"
	"github.com/preston-bernstein/matrix-screener/internal/render"
	"github.com/preston-bernstein/matrix-screener/internal/testutil"
)

var fixedNow = time.Date(2025, 10, 18, 14, 0, 0, 0, time.UTC)

type stubController struct {
	board     board.Board
	league    leagues.League
	refreshes int
	selected  []string
	err       error
}

func (s *stubController) Refresh(ctx context.Context) board.Board {
	_ = ctx
	s.refreshes++
	return s.board
}

func (s *stubController) SelectLeague(ctx context.Context, id string) (board.Board, error) {
	_ = ctx
	s.selected = append(s.selected, id)
	if s.err != nil {
		return board.Board{}, s.err
	}
	l, err := leagues.Lookup(id)
	if err != nil {
		return board.Board{}, err
	}
	s.league = l
	b := s.board
	b.League = l
	return b, nil
}

func (s *stubController) League() leagues.League {
	return s.league
}

func onlineBoard() board.Board {
	b := board.New(leagues.Default(), 2025)
	b.Status = board.StatusOnline
	b.Matchday = 7
	b.LastUpdate = fixedNow
	b.Matches = []matches.Match{testutil.FinishedMatch(1, fixedNow.Add(-26*time.Hour), 2, 0)}
	return b
}

func newTestHandler(b board.Board, ctrl Controller, statusFn func() poller.Status) *Handler {
	h := NewHandler(testutil.NewBoardService(b), ctrl, nil, statusFn)
	h.now = testutil.NowAt(fixedNow)
	return h
}

func withID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestHealth(t *testing.T) {
	h := newTestHandler(onlineBoard(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newTestHandler(onlineBoard(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	ready := newTestHandler(onlineBoard(), nil, func() poller.Status {
		return poller.Status{LastSuccess: fixedNow}
	})
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(ready.Ready), http.MethodGet, "/ready", nil), http.StatusOK)

	failing := newTestHandler(onlineBoard(), nil, func() poller.Status {
		return poller.Status{ConsecutiveFailures: 1, LastError: "upstream down"}
	})
	rr := testutil.Serve(http.HandlerFunc(failing.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "upstream down" {
		t.Fatalf("expected last error surfaced, got %q", resp["error"])
	}

	starting := newTestHandler(onlineBoard(), nil, func() poller.Status { return poller.Status{} })
	rr = testutil.Serve(http.HandlerFunc(starting.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	noPoller := newTestHandler(onlineBoard(), nil, nil)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(noPoller.Ready), http.MethodGet, "/ready", nil), http.StatusOK)
}

func TestPageRendersBoard(t *testing.T) {
	h := newTestHandler(onlineBoard(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Page), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %s", ct)
	}
	body := rr.Body.String()
	for _, want := range []string{"SPIELTAG 7", "✓ BEENDET", "2 : 0", "SYSTEM ONLINE"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestBoardReturnsView(t *testing.T) {
	h := newTestHandler(onlineBoard(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Board), http.MethodGet, "/api/board", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var v render.View
	testutil.DecodeJSON(t, rr, &v)
	if v.State != render.StateMatches || len(v.Cards) != 1 {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.Cards[0].Score != "2 : 0" {
		t.Fatalf("unexpected score %q", v.Cards[0].Score)
	}
}

func TestLeagues(t *testing.T) {
	cl, _ := leagues.Lookup("cl")
	h := newTestHandler(onlineBoard(), &stubController{league: cl}, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Leagues), http.MethodGet, "/api/leagues", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp LeaguesResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Leagues) != 3 || resp.Selected != "cl" {
		t.Fatalf("unexpected leagues response %+v", resp)
	}

	noCtrl := newTestHandler(onlineBoard(), nil, nil)
	rr = testutil.Serve(http.HandlerFunc(noCtrl.Leagues), http.MethodGet, "/api/leagues", nil)
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Selected != leagues.DefaultID {
		t.Fatalf("expected board league as selection, got %q", resp.Selected)
	}
}

func TestRefresh(t *testing.T) {
	ctrl := &stubController{board: onlineBoard()}
	h := newTestHandler(onlineBoard(), ctrl, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Refresh), http.MethodPost, "/api/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusAccepted)
	if ctrl.refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", ctrl.refreshes)
	}

	var v render.View
	testutil.DecodeJSON(t, rr, &v)
	if v.StatusLabel != "SYSTEM ONLINE" {
		t.Fatalf("unexpected status label %q", v.StatusLabel)
	}
}

func TestRefreshFromFormRedirects(t *testing.T) {
	ctrl := &stubController{board: onlineBoard()}
	h := newTestHandler(onlineBoard(), ctrl, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", strings.NewReader(url.Values{}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), req)

	testutil.AssertStatus(t, rr, http.StatusSeeOther)
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestRefreshWithoutController(t *testing.T) {
	h := newTestHandler(onlineBoard(), nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Refresh), http.MethodPost, "/api/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestSelectLeague(t *testing.T) {
	ctrl := &stubController{board: onlineBoard()}
	h := newTestHandler(onlineBoard(), ctrl, nil)

	req := withID(httptest.NewRequest(http.MethodPost, "/api/leagues/bl2/select", nil), "bl2")
	rr := testutil.ServeRequest(http.HandlerFunc(h.SelectLeague), req)
	testutil.AssertStatus(t, rr, http.StatusAccepted)

	var v render.View
	testutil.DecodeJSON(t, rr, &v)
	if v.League != "2. Bundesliga" {
		t.Fatalf("expected 2. Bundesliga, got %q", v.League)
	}
	if len(ctrl.selected) != 1 || ctrl.selected[0] != "bl2" {
		t.Fatalf("unexpected selections %v", ctrl.selected)
	}
}

func TestSelectLeagueUnknown(t *testing.T) {
	h := newTestHandler(onlineBoard(), &stubController{}, nil)

	req := withID(httptest.NewRequest(http.MethodPost, "/api/leagues/epl/select", nil), "epl")
	req.Header.Set("X-Request-ID", "req-1")
	rr := testutil.ServeRequest(http.HandlerFunc(h.SelectLeague), req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "league not found" || resp["requestId"] != "req-1" {
		t.Fatalf("unexpected error body %v", resp)
	}
}

func TestSelectLeagueFailure(t *testing.T) {
	h := newTestHandler(onlineBoard(), &stubController{err: errors.New("boom")}, nil)

	req := withID(httptest.NewRequest(http.MethodPost, "/api/leagues/bl1/select", nil), "bl1")
	rr := testutil.ServeRequest(http.HandlerFunc(h.SelectLeague), req)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)

	noCtrl := newTestHandler(onlineBoard(), nil, nil)
	rr = testutil.ServeRequest(http.HandlerFunc(noCtrl.SelectLeague), req)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestFallbackHandlers(t *testing.T) {
	h := newTestHandler(onlineBoard(), nil, nil)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.MethodNotAllowed), http.MethodDelete, "/api/board", nil), http.StatusMethodNotAllowed)
}
