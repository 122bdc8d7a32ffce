// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// DraftOrderDependencies defines the interface for draft order reads.
type DraftOrderDependencies interface {
	DraftOrder(ctx context.Context, leagueID string) ([]types.DraftPrediction, error)
	DefaultLeague() string
}

// DraftOrderHandler handles draft order requests.
type DraftOrderHandler struct {
	deps DraftOrderDependencies
}

// NewDraftOrderHandler creates a new draft order handler.
func NewDraftOrderHandler(deps DraftOrderDependencies) *DraftOrderHandler {
	return &DraftOrderHandler{deps: deps}
}

type draftOrderResponse struct {
	LeagueID    string                  `json:"league_id"`
	Predictions []types.DraftPrediction `json:"predictions"`
}

// HandleGetDraftOrder handles GET /draft-order?league= requests.
func (h *DraftOrderHandler) HandleGetDraftOrder(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_draft_order"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	league := leagueParam(r, h.deps)
	if league == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrNoLeague))
		return
	}

	predictions, err := h.deps.DraftOrder(r.Context(), league)
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, draftOrderResponse{LeagueID: league, Predictions: predictions})
}
