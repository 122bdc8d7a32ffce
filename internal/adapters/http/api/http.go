// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	"github.com/theleaguehq/leaguecap/internal/domain/assets"
	"github.com/theleaguehq/leaguecap/internal/domain/contracts"
	"github.com/theleaguehq/leaguecap/internal/domain/roster"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Derived-value reads, computed from the latest snapshots.
	DraftOrder(ctx context.Context, leagueID string) ([]types.DraftPrediction, error)
	ToiletBowl(ctx context.Context, leagueID string) ([]types.ToiletBowlResult, error)
	Assets(ctx context.Context, leagueID string) ([]types.AssetsFranchise, []assets.Mismatch, error)
	Roster(ctx context.Context, leagueID, franchiseID string) ([]roster.DisplayRow, error)

	// Contract operations.
	ValidateContract(ctx context.Context, req contracts.Request) contracts.ValidationResult
	ExtensionQuote(ctx context.Context, leagueID, playerID string) (contracts.ExtensionQuote, error)

	// Pipeline operations.
	Refresh(ctx context.Context, leagueID string, kinds []string) (queued, skipped int)
	PutSnapshot(ctx context.Context, snap repository.Snapshot) error

	// DefaultLeague resolves requests that omit the league parameter.
	DefaultLeague() string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	draftOrderHandler *DraftOrderHandler
	toiletBowlHandler *ToiletBowlHandler
	assetsHandler     *AssetsHandler
	rosterHandler     *RosterHandler
	contractsHandler  *ContractsHandler
	refreshHandler    *RefreshHandler
	snapshotsHandler  *SnapshotsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		draftOrderHandler: NewDraftOrderHandler(deps),
		toiletBowlHandler: NewToiletBowlHandler(deps),
		assetsHandler:     NewAssetsHandler(deps),
		rosterHandler:     NewRosterHandler(deps),
		contractsHandler:  NewContractsHandler(deps),
		refreshHandler:    NewRefreshHandler(deps),
		snapshotsHandler:  NewSnapshotsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/draft-order", MetricsMiddleware(s.draftOrderHandler.HandleGetDraftOrder, "draft_order"))
	mux.HandleFunc("/toilet-bowl", MetricsMiddleware(s.toiletBowlHandler.HandleGetToiletBowl, "toilet_bowl"))
	mux.HandleFunc("/assets", MetricsMiddleware(s.assetsHandler.HandleGetAssets, "assets"))
	mux.HandleFunc("/roster/", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/contracts/validate", MetricsMiddleware(s.contractsHandler.HandleValidate, "contracts_validate"))
	mux.HandleFunc("/contracts/extension", MetricsMiddleware(s.contractsHandler.HandleExtension, "contracts_extension"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
	mux.HandleFunc("/snapshots", MetricsMiddleware(s.snapshotsHandler.HandlePutSnapshot, "snapshots"))
}

// leagueParam resolves the league for a request: the ?league= query
// parameter, falling back to the instance default.
func leagueParam(r *http.Request, deps interface{ DefaultLeague() string }) string {
	if league := r.URL.Query().Get("league"); league != "" {
		return league
	}
	return deps.DefaultLeague()
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isUnavailable reports whether err means the underlying snapshot has
// not been fetched yet, which the API maps to 404.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unavailable") || strings.Contains(msg, "not found")
}
