package api

import (
	"encoding/json"
	"net/http"

	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// StatsProvider reports the service's operational counters: refresh
// queue depth, in-flight keys, and how many snapshots the store holds.
type StatsProvider interface {
	GetStats() types.ServiceStats
}

// StatsHandler serves the operational stats endpoint.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(h.provider.GetStats())
}
