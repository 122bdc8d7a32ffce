package seasonaudit

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/theleaguehq/leaguecap/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "audit_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the season audit tool.
func ShowHelp() {
	os.Stdout.WriteString(`League Cap Season Audit Tool
============================

Generates a synthetic season, loads it into a running server, and
verifies the draft-order and pick-ownership invariants.

Usage:
  go run cmd/season-audit/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -league string
        League ID to load and audit (default "audit")
  -franchises int
        Number of franchises in the synthetic league (default 16)
  -year int
        Season year for generated picks (default current year)
  -trades int
        Number of synthetic pick trades (default 5)
  -seed int
        RNG seed for reproducible seasons (default time-based)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for audit output (default: audit_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Audit with default settings
  go run cmd/season-audit/main.go

  # Reproducible audit against a non-default server
  go run cmd/season-audit/main.go -url http://localhost:8080 -seed 42

  # Larger league, more trades
  go run cmd/season-audit/main.go -franchises 16 -trades 12
`)
}
