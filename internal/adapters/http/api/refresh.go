// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
)

// RefreshDependencies defines the interface for refresh requests.
type RefreshDependencies interface {
	Refresh(ctx context.Context, leagueID string, kinds []string) (queued, skipped int)
	DefaultLeague() string
}

// RefreshHandler handles refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	LeagueID string `json:"league_id"`
	Queued   int    `json:"queued"`
	Skipped  int    `json:"skipped"`
}

// HandleRefresh handles POST /refresh?league=&kinds= requests. The
// optional kinds parameter is a comma-joined list; omitting it refreshes
// every kind.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	league := leagueParam(r, h.deps)
	if league == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrNoLeague))
		return
	}

	var kinds []string
	if raw := r.URL.Query().Get("kinds"); raw != "" {
		for _, kind := range strings.Split(raw, ",") {
			if kind = strings.TrimSpace(kind); kind != "" {
				kinds = append(kinds, kind)
			}
		}
	}

	queued, skipped := h.deps.Refresh(r.Context(), league, kinds)
	status := http.StatusAccepted
	if queued == 0 && skipped > 0 {
		// Everything was already in flight or the queue is saturated.
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, refreshResponse{LeagueID: league, Queued: queued, Skipped: skipped})
}
