package seasonaudit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/theleaguehq/leaguecap/internal/domain/model"
)

// httpClient is a minimal JSON client for the audit tool.
type httpClient struct {
	http *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{http: &http.Client{Timeout: timeout}}
}

// getJSON fetches url and decodes the response into out.
func (c *httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %d: %s", url, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// postJSON posts v to url and checks for a success status.
func (c *httpClient) postJSON(ctx context.Context, url string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST %s returned %d: %s", url, resp.StatusCode, string(body))
	}
	return nil
}

// checkHealth verifies the service answers on /healthz.
func (c *httpClient) checkHealth(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// Snapshot payload envelopes, matching the platform export shapes the
// service decodes.
type snapshotEnvelope struct {
	LeagueID string `json:"league_id"`
	Kind     string `json:"kind"`
	Data     any    `json:"data"`
}

func standingsEnvelope(leagueID string, rows []model.StandingsRow) snapshotEnvelope {
	return snapshotEnvelope{
		LeagueID: leagueID,
		Kind:     "leagueStandings",
		Data: map[string]any{
			"leagueStandings": map[string]any{"franchise": rows},
		},
	}
}

func bracketsEnvelope(leagueID string, items []model.BracketItem) snapshotEnvelope {
	return snapshotEnvelope{
		LeagueID: leagueID,
		Kind:     "playoffBrackets",
		Data: map[string]any{
			"playoffBrackets": map[string]any{"bracket": items},
		},
	}
}

func transactionsEnvelope(leagueID string, txs []model.Transaction) snapshotEnvelope {
	return snapshotEnvelope{
		LeagueID: leagueID,
		Kind:     "transactions",
		Data: map[string]any{
			"transactions": map[string]any{"transaction": txs},
		},
	}
}

func draftResultsEnvelope(leagueID string, rows []model.DraftResultRow) snapshotEnvelope {
	return snapshotEnvelope{
		LeagueID: leagueID,
		Kind:     "draftResults",
		Data: map[string]any{
			"draftResults": map[string]any{"draftPick": rows},
		},
	}
}

func leagueEnvelope(leagueID string, metas []model.FranchiseMeta) snapshotEnvelope {
	return snapshotEnvelope{
		LeagueID: leagueID,
		Kind:     "league",
		Data: map[string]any{
			"league": map[string]any{"franchise": metas},
		},
	}
}
