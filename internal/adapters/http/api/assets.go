// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/theleaguehq/leaguecap/internal/domain/assets"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// AssetsDependencies defines the interface for asset reads.
type AssetsDependencies interface {
	Assets(ctx context.Context, leagueID string) ([]types.AssetsFranchise, []assets.Mismatch, error)
	DefaultLeague() string
}

// AssetsHandler handles pick-ownership requests.
type AssetsHandler struct {
	deps AssetsDependencies
}

// NewAssetsHandler creates a new assets handler.
func NewAssetsHandler(deps AssetsDependencies) *AssetsHandler {
	return &AssetsHandler{deps: deps}
}

type assetsResponse struct {
	LeagueID   string                  `json:"league_id"`
	Franchises []types.AssetsFranchise `json:"franchises"`
	Mismatches []assets.Mismatch       `json:"mismatches,omitempty"`
}

// HandleGetAssets handles GET /assets?league= requests. Mismatches
// between the transaction-replay and draft-comment derivations are
// reported alongside the replayed ownership, which is authoritative.
func (h *AssetsHandler) HandleGetAssets(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_assets"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	league := leagueParam(r, h.deps)
	if league == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrNoLeague))
		return
	}

	franchises, mismatches, err := h.deps.Assets(r.Context(), league)
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, assetsResponse{
		LeagueID:   league,
		Franchises: franchises,
		Mismatches: mismatches,
	})
}
