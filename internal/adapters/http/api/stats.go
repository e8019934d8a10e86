package api

import (
	"encoding/json"
	"net/http"
)

// StatsProvider exposes a snapshot of scoring service runtime state.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the runtime stats snapshot.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler backed by the given provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats serves GET /stats with the current queue, cache and worker
// counters as a JSON object.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(h.provider.GetStats())
}
