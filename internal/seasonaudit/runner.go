package seasonaudit

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/theleaguehq/leaguecap/pkg/logger"
)

// Run executes the complete season audit: generate a synthetic season,
// load it into a running server, fetch the derived values, and verify
// the ordering and ownership properties hold.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Get().Info(ctx, "starting season audit",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("leagueID", cfg.LeagueID),
		logger.Int("franchises", cfg.FranchiseCount),
		logger.Int("trades", cfg.TradeCount),
		logger.Any("seed", seed),
	)

	client := newHTTPClient(cfg.Timeout)

	// Step 1: Check service health
	if err := client.checkHealth(ctx, cfg.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and load the season
	season, trades := generateSeason(cfg, rng)
	stats.TradesGenerated = len(trades)
	if err := loadSeason(ctx, client, cfg, season, stats); err != nil {
		return fmt.Errorf("season load failed: %w", err)
	}

	// Step 3: Fetch the draft order twice for the determinism check
	var first, second draftOrderResponse
	url := cfg.BaseURL + "/draft-order?league=" + cfg.LeagueID
	if err := client.getJSON(ctx, url, &first); err != nil {
		return fmt.Errorf("draft order fetch failed: %w", err)
	}
	if err := client.getJSON(ctx, url, &second); err != nil {
		return fmt.Errorf("draft order refetch failed: %w", err)
	}
	stats.PredictionsFetched = len(first.Predictions)

	// Step 4: Fetch assets
	var gotAssets assetsResponse
	if err := client.getJSON(ctx, cfg.BaseURL+"/assets?league="+cfg.LeagueID, &gotAssets); err != nil {
		return fmt.Errorf("assets fetch failed: %w", err)
	}

	// Step 5: Verify
	checks := []struct {
		name string
		run  func() error
	}{
		{"determinism", func() error { return verifyDeterminism(first.Predictions, second.Predictions) }},
		{"uniqueness", func() error { return verifyUniqueness(first.Predictions) }},
		{"special slots", func() error { return verifySpecialSlots(first.Predictions) }},
		{"ownership", func() error { return verifyOwnership(ctx, cfg, season, gotAssets) }},
	}

	for _, check := range checks {
		stats.ChecksRun++
		if err := check.run(); err != nil {
			stats.ChecksFailed++
			logger.Get().Error(ctx, "audit check failed",
				logger.String("check", check.name),
				logger.Error(err),
			)
		} else {
			logger.Get().Info(ctx, "audit check passed", logger.String("check", check.name))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.ChecksFailed > 0 {
		return fmt.Errorf("%d of %d audit checks failed", stats.ChecksFailed, stats.ChecksRun)
	}
	logger.Get().Info(ctx, "audit completed successfully")
	return nil
}

// loadSeason pushes every generated snapshot to the server.
func loadSeason(ctx context.Context, client *httpClient, cfg *Config, season *Season, stats *Stats) error {
	url := cfg.BaseURL + "/snapshots"
	envelopes := []snapshotEnvelope{
		standingsEnvelope(cfg.LeagueID, season.Standings),
		bracketsEnvelope(cfg.LeagueID, season.Brackets),
		transactionsEnvelope(cfg.LeagueID, season.Transactions),
		draftResultsEnvelope(cfg.LeagueID, season.DraftResults),
		leagueEnvelope(cfg.LeagueID, season.Franchises),
	}
	for _, env := range envelopes {
		if err := client.postJSON(ctx, url, env); err != nil {
			return fmt.Errorf("load %s snapshot: %w", env.Kind, err)
		}
		stats.SnapshotsLoaded++
	}
	logger.Get().Info(ctx, "season loaded", logger.Int("snapshots", stats.SnapshotsLoaded))
	return nil
}

// displayFinalStats prints the final audit statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("snapshotsLoaded", stats.SnapshotsLoaded),
		logger.Int("predictionsFetched", stats.PredictionsFetched),
		logger.Int("tradesGenerated", stats.TradesGenerated),
		logger.Int("checksRun", stats.ChecksRun),
		logger.Int("checksFailed", stats.ChecksFailed),
		logger.String("duration", stats.Duration.String()),
	)
}
