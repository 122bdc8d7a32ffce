package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
)
