// Package fetch is the HTTP client for the league platform's export
// API. Every data kind comes from the same endpoint shape:
// {base}/export?TYPE=<kind>&L=<league>&JSON=1.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/theleaguehq/leaguecap/pkg/logger"
	"github.com/theleaguehq/leaguecap/pkg/metrics"
)

// Export kinds recognized by the platform.
const (
	KindStandings    = "leagueStandings"
	KindBrackets     = "playoffBrackets"
	KindTransactions = "transactions"
	KindDraftResults = "draftResults"
	KindRosters      = "rosters"
	KindSalaries     = "salaries"
	KindLeague       = "league"
)

// Kinds lists every export kind the refresh pipeline fetches.
var Kinds = []string{
	KindStandings,
	KindBrackets,
	KindTransactions,
	KindDraftResults,
	KindRosters,
	KindSalaries,
	KindLeague,
}

// Client fetches export payloads. The inter-request delay keeps the
// client polite to the platform's rate limiting.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	delay     time.Duration
	log       logger.Logger
}

// NewClient builds a fetch client for the given export base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: 20 * time.Second},
		baseURL:   baseURL,
		userAgent: "leaguecap/1.0",
		delay:     250 * time.Millisecond,
		log:       logger.Named("fetch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads one export kind for a league and returns the raw JSON
// payload.
func (c *Client) Fetch(ctx context.Context, leagueID, kind string) ([]byte, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	q := url.Values{}
	q.Set("TYPE", kind)
	q.Set("L", leagueID)
	q.Set("JSON", "1")
	endpoint := c.baseURL + "/export?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", kind, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordFetchError(kind)
		return nil, fmt.Errorf("fetch %s for league %s: %w", kind, leagueID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordFetchError(kind)
		return nil, fmt.Errorf("read %s response: %w", kind, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordFetchError(kind)
		return nil, fmt.Errorf("%w: %s returned %d", ErrUpstreamStatus, kind, resp.StatusCode)
	}

	metrics.RecordSnapshotFetched(kind)
	metrics.RecordSnapshotFetchLatency(kind, float64(time.Since(start).Milliseconds()))
	c.log.Debug(ctx, "fetched export",
		logger.String("kind", kind),
		logger.String("league_id", leagueID),
		logger.Int("bytes", len(body)),
	)
	return body, nil
}
