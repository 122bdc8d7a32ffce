package draftorder

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingStandings = errors.New("missing standings data")
)
