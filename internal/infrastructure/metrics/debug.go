package metrics

import (
	"encoding/json"
	"net/http"
)

// Snapshot is the JSON document served by DebugHandler.
type Snapshot struct {
	Store *StoreMetrics `json:"store"`
	API   *APIMetrics   `json:"api"`
}

// Snapshot returns the current store and API metrics.
func (c *Collector) Snapshot(r *http.Request) *Snapshot {
	return &Snapshot{
		Store: c.GetStoreMetrics(r.Context()),
		API:   c.GetAPIMetrics(),
	}
}

// DebugHandler serves the collector's in-process counters as JSON.
func (c *Collector) DebugHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(c.Snapshot(r))
	})
}
