package seasonaudit

import "time"

// Config holds configuration for a season audit run.
type Config struct {
	BaseURL        string        // Base URL of the service
	LeagueID       string        // League to load and audit
	FranchiseCount int           // Number of franchises in the synthetic league
	SeasonYear     int           // Season year for generated picks
	TradeCount     int           // Number of synthetic pick trades
	Seed           int64         // RNG seed; 0 means time-based
	Timeout        time.Duration // HTTP request timeout
	LogFile        string        // Log file for audit output
	Verbose        bool          // Enable verbose logging
}

// Stats holds audit statistics.
type Stats struct {
	SnapshotsLoaded    int
	PredictionsFetched int
	TradesGenerated    int
	ChecksRun          int
	ChecksFailed       int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
