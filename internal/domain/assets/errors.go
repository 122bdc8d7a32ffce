package assets

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingDraftResults = errors.New("missing draft results data")
	ErrMissingTransactions = errors.New("missing transaction data")
)
