package handlers

import (
	"log"
	"net/http"

	"route-cost-service/internal/api/dto"
	"route-cost-service/internal/ports"
)

// VehicleHandler exposes the read-only vehicle profile catalog.
type VehicleHandler struct {
	Repo ports.VehicleRepository
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		log.Printf("list vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVehiclesResponse{
		Vehicles: make([]dto.VehicleResponse, 0, len(vehicles)),
	}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			VehicleID:        v.ID,
			Name:             v.Name,
			Type:             string(v.Type),
			FuelEfficiency:   v.FuelEfficiency,
			FuelCostPerLiter: v.FuelCostPerLiter,
			TollMultiplier:   v.TollMultiplier,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
