package api

import (
	"net/http"
	"time"
)

// StatsProvider reports service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves a snapshot of the service statistics, stamped with
// the time it was taken.
type StatsHandler struct {
	provider StatsProvider
	now      func() time.Time
}

// NewStatsHandler returns a handler over provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, now: time.Now}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snapshot := map[string]interface{}{}
	if h.provider != nil {
		for k, v := range h.provider.GetStats() {
			snapshot[k] = v
		}
	}
	snapshot["takenAt"] = h.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, snapshot)
}
