package handlers

import (
	"log"
	"net/http"
	"strings"

	"route-cost-service/internal/api/dto"
	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

// TollHandler exposes the read-only toll catalog. Repeated `road`
// query parameters narrow the listing to specific highways.
type TollHandler struct {
	Catalog ports.TollCatalog
}

func (h *TollHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tolls, err := h.listTolls(r)
	if err != nil {
		log.Printf("list tolls failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTollsResponse{
		Tolls: make([]dto.TollResponse, 0, len(tolls)),
	}
	for _, t := range tolls {
		res.Tolls = append(res.Tolls, dto.TollResponse{
			TollID:       t.ID,
			Name:         t.Name,
			Lat:          t.Lat,
			Lng:          t.Lng,
			RoadName:     t.RoadName,
			Cost:         t.Cost,
			Restrictions: t.Restrictions,
			Source:       string(t.Source),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// listTolls applies the optional road filter, pushed into the store
// when the catalog supports it and applied in memory otherwise.
func (h *TollHandler) listTolls(r *http.Request) ([]domain.TollPoint, error) {
	roads := r.URL.Query()["road"]
	if len(roads) == 0 {
		return h.Catalog.ListTolls(r.Context())
	}

	if filtered, ok := h.Catalog.(ports.RoadFilteredTollCatalog); ok {
		return filtered.ListTollsByRoads(r.Context(), roads)
	}

	all, err := h.Catalog.ListTolls(r.Context())
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(roads))
	for _, road := range roads {
		road = strings.TrimSpace(road)
		if road != "" {
			want[road] = struct{}{}
		}
	}

	tolls := make([]domain.TollPoint, 0, len(all))
	for _, t := range all {
		if _, ok := want[t.RoadName]; ok {
			tolls = append(tolls, t)
		}
	}
	return tolls, nil
}
