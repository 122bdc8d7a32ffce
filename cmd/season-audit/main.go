package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/theleaguehq/leaguecap/internal/seasonaudit"
)

// Default configuration constants.
const (
	defaultFranchises   = 16
	defaultTrades       = 5
	defaultTimeout      = 30 * time.Second
	defaultAuditTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		leagueID   = flag.String("league", "audit", "League ID to load and audit")
		franchises = flag.Int("franchises", defaultFranchises, "Number of franchises in the synthetic league")
		year       = flag.Int("year", time.Now().Year(), "Season year for generated picks")
		trades     = flag.Int("trades", defaultTrades, "Number of synthetic pick trades")
		seed       = flag.Int64("seed", 0, "RNG seed for reproducible seasons (0 = time-based)")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile    = flag.String("log", "", "Log file for audit output (default: audit_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seasonaudit.ShowHelp()
		return
	}

	if err := seasonaudit.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultAuditTimeout)
	defer cancel()

	config := &seasonaudit.Config{
		BaseURL:        *baseURL,
		LeagueID:       *leagueID,
		FranchiseCount: *franchises,
		SeasonYear:     *year,
		TradeCount:     *trades,
		Seed:           *seed,
		Timeout:        *timeout,
		LogFile:        *logFile,
		Verbose:        *verbose,
	}

	if err := seasonaudit.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Audit failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
