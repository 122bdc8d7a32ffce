// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
)

// SnapshotsDependencies defines the interface for direct snapshot loads.
type SnapshotsDependencies interface {
	PutSnapshot(ctx context.Context, snap repository.Snapshot) error
	DefaultLeague() string
}

// SnapshotsHandler handles the audit/ops snapshot load endpoint.
type SnapshotsHandler struct {
	deps SnapshotsDependencies
}

// NewSnapshotsHandler creates a new snapshots handler.
func NewSnapshotsHandler(deps SnapshotsDependencies) *SnapshotsHandler {
	return &SnapshotsHandler{deps: deps}
}

// snapshotRequest mirrors the OpenAPI schema for POST /snapshots.
type snapshotRequest struct {
	LeagueID string          `json:"league_id"`
	Kind     string          `json:"kind"`
	Data     json.RawMessage `json:"data"`
}

func (s snapshotRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Kind) == "":
		return errors.New("missing kind")
	case len(s.Data) == 0:
		return errors.New("missing data")
	}
	return nil
}

type snapshotAckResponse struct {
	Status string `json:"status"`
}

// HandlePutSnapshot handles POST /snapshots requests, storing a payload
// directly without going through the fetch pipeline.
func (h *SnapshotsHandler) HandlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_snapshot"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req snapshotRequest
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

	snap := repository.Snapshot{
		LeagueID: req.LeagueID,
		Kind:     req.Kind,
		Data:     req.Data,
	}
	if err := h.deps.PutSnapshot(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, snapshotAckResponse{Status: "stored"})
}
