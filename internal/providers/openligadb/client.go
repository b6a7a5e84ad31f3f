package openligadb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
	"github.com/preston-bernstein/matrix-screener/internal/providers"
)

// Config controls how the OpenLigaDB client reaches the upstream API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Timezone   string
	Logger     *slog.Logger
}

// Client fetches matchdays and matches from OpenLigaDB and maps them to domain models.
type Client struct {
	rest *resty.Client
	loc  *time.Location
}

// NewClient constructs an OpenLigaDB client with the provided configuration.
func NewClient(cfg Config) *Client {
	rest := resty.NewWithClient(resolveHTTPClient(cfg.HTTPClient, cfg.Timeout)).
		SetBaseURL(normalizeBaseURL(cfg.BaseURL)).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger: cfg.Logger})

	return &Client{
		rest: rest,
		loc:  resolveLocation(cfg.Timezone),
	}
}

// CurrentMatchday retrieves the league's current round (GET /getcurrentgroup/{slug}).
func (c *Client) CurrentMatchday(ctx context.Context, leagueSlug string) (matches.Matchday, error) {
	var payload groupResponse
	err := c.get(ctx, opCurrentGroup, "/getcurrentgroup/{slug}", map[string]string{
		"slug": leagueSlug,
	}, &payload)
	if err != nil {
		return matches.Matchday{}, err
	}
	if payload.GroupOrderID <= 0 {
		return matches.Matchday{}, fetchError(opCurrentGroup, 0, fmt.Errorf("missing groupOrderID for %q", leagueSlug))
	}
	return mapMatchday(payload), nil
}

// FetchMatches retrieves one matchday (GET /getmatchdata/{slug}/{season}/{matchday}).
func (c *Client) FetchMatches(ctx context.Context, leagueSlug string, season, matchday int) ([]matches.Match, error) {
	var payload []matchResponse
	err := c.get(ctx, opMatchData, "/getmatchdata/{slug}/{season}/{matchday}", map[string]string{
		"slug":     leagueSlug,
		"season":   strconv.Itoa(season),
		"matchday": strconv.Itoa(matchday),
	}, &payload)
	if err != nil {
		return nil, err
	}

	out := make([]matches.Match, 0, len(payload))
	for _, m := range payload {
		out = append(out, mapMatch(m, c.loc))
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, op, path string, params map[string]string, dest any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParams(params).
		Get(path)
	if err != nil {
		return fetchError(op, 0, err)
	}

	if !resp.IsSuccess() {
		body := resp.Body()
		if len(body) > errorBodyLimit {
			body = body[:errorBodyLimit]
		}
		fe := fetchError(op, resp.StatusCode(),
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), strings.TrimSpace(string(body))))
		fe.RetryAfter = parseRetryAfter(resp.Header().Get("Retry-After"))
		return fe
	}

	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return fetchError(op, resp.StatusCode(), fmt.Errorf("decode: %w", err))
	}
	return nil
}

func fetchError(op string, status int, err error) *providers.FetchError {
	return &providers.FetchError{
		Provider:   providerName,
		Op:         op,
		StatusCode: status,
		Err:        err,
	}
}
