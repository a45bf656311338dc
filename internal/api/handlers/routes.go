package handlers

import (
	"log"
	"net/http"

	"route-cost-service/internal/api/dto"
	"route-cost-service/internal/ports"
)

// RouteHandler exposes the history of persisted route plans.
type RouteHandler struct {
	Repo ports.RouteRepository
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	routes, err := h.Repo.ListRoutes(r.Context())
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{
		Routes: make([]dto.RouteResponse, 0, len(routes)),
	}
	for _, rt := range routes {
		res.Routes = append(res.Routes, dto.RouteResponse{
			RouteID:              rt.ID,
			WaypointIDs:          rt.WaypointIDs,
			WaypointNames:        rt.WaypointNames,
			TotalDistanceMeters:  rt.TotalDistanceMeters,
			TotalDurationSeconds: rt.TotalDurationSeconds,
			FuelCost:             rt.FuelCost,
			TollCost:             rt.TollCost,
			TotalCost:            rt.TotalCost,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
