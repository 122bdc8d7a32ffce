package fetch

import "errors"

// Sentinel kinds for fetch errors.
var (
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	ErrUnknownKind    = errors.New("unknown export kind")
)
