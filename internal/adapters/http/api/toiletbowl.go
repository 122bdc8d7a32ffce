// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// ToiletBowlDependencies defines the interface for consolation reads.
type ToiletBowlDependencies interface {
	ToiletBowl(ctx context.Context, leagueID string) ([]types.ToiletBowlResult, error)
	DefaultLeague() string
}

// ToiletBowlHandler handles consolation-ladder requests.
type ToiletBowlHandler struct {
	deps ToiletBowlDependencies
}

// NewToiletBowlHandler creates a new toilet bowl handler.
func NewToiletBowlHandler(deps ToiletBowlDependencies) *ToiletBowlHandler {
	return &ToiletBowlHandler{deps: deps}
}

type toiletBowlResponse struct {
	LeagueID string                   `json:"league_id"`
	Results  []types.ToiletBowlResult `json:"results"`
}

// HandleGetToiletBowl handles GET /toilet-bowl?league= requests. An
// empty result list is the normal pre-playoff state, served as 200.
func (h *ToiletBowlHandler) HandleGetToiletBowl(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_toilet_bowl"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	league := leagueParam(r, h.deps)
	if league == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrNoLeague))
		return
	}

	results, err := h.deps.ToiletBowl(r.Context(), league)
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, toiletBowlResponse{LeagueID: league, Results: results})
}
