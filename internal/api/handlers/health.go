package handlers

import (
	"net/http"
)

// Health is the liveness check. It deliberately touches no dependency:
// a database or routing-provider outage degrades planning but does not
// make the process unhealthy.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "route-cost-service",
	})
}
