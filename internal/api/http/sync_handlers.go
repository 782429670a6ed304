package http

import (
	"encoding/json"
	"net/http"
)

// SyncHandler forces a full export of the institution dataset to its flat
// file and reports how many rows were written.
func SyncHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := deps.Exporter.Sync(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		deps.record(r, "DatasetSynced", "", map[string]int{"count": n})
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "count": n})
	}
}

// HealthHandler is the liveness probe.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
