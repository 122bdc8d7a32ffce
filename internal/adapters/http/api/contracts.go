// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/theleaguehq/leaguecap/internal/domain/contracts"
)

// ContractsDependencies defines the interface for contract operations.
type ContractsDependencies interface {
	ValidateContract(ctx context.Context, req contracts.Request) contracts.ValidationResult
	ExtensionQuote(ctx context.Context, leagueID, playerID string) (contracts.ExtensionQuote, error)
	DefaultLeague() string
}

// ContractsHandler handles contract validation and extension pricing.
type ContractsHandler struct {
	deps ContractsDependencies
}

// NewContractsHandler creates a new contracts handler.
func NewContractsHandler(deps ContractsDependencies) *ContractsHandler {
	return &ContractsHandler{deps: deps}
}

// HandleValidate handles POST /contracts/validate requests. An invalid
// request still returns 200: the result body carries the verdict and
// the per-field errors; non-200 statuses are reserved for malformed
// requests and transport problems.
func (h *ContractsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_contract"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req contracts.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.LeagueID == "" {
		req.LeagueID = h.deps.DefaultLeague()
	}

	result := h.deps.ValidateContract(r.Context(), req)
	writeJSON(w, http.StatusOK, result)
}

// extensionRequest mirrors the OpenAPI schema for POST /contracts/extension.
type extensionRequest struct {
	LeagueID string `json:"league_id"`
	PlayerID string `json:"player_id"`
}

func (e extensionRequest) validate() error {
	if strings.TrimSpace(e.PlayerID) == "" {
		return errors.New("missing player_id")
	}
	return nil
}

// HandleExtension handles POST /contracts/extension requests.
func (h *ContractsHandler) HandleExtension(w http.ResponseWriter, r *http.Request) {
	const op = "api.extension_quote"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req extensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.LeagueID == "" {
		req.LeagueID = h.deps.DefaultLeague()
	}
	if req.LeagueID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrNoLeague))
		return
	}

	quote, err := h.deps.ExtensionQuote(r.Context(), req.LeagueID, req.PlayerID)
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}
