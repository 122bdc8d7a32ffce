// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/theleaguehq/leaguecap/internal/domain/roster"
)

// RosterDependencies defines the interface for roster reads.
type RosterDependencies interface {
	Roster(ctx context.Context, leagueID, franchiseID string) ([]roster.DisplayRow, error)
	DefaultLeague() string
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

type rosterResponse struct {
	LeagueID    string              `json:"league_id"`
	FranchiseID string              `json:"franchise_id"`
	Rows        []roster.DisplayRow `json:"rows"`
}

// HandleGetRoster handles GET /roster/{franchise_id}?league= requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /roster/
	franchiseID := strings.TrimPrefix(r.URL.Path, "/roster/")
	if franchiseID == "" || strings.Contains(franchiseID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	league := leagueParam(r, h.deps)
	if league == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrNoLeague))
		return
	}

	rows, err := h.deps.Roster(r.Context(), league, franchiseID)
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, rosterResponse{
		LeagueID:    league,
		FranchiseID: franchiseID,
		Rows:        rows,
	})
}
