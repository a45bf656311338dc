package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"route-cost-service/internal/api/dto"
	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
	"route-cost-service/internal/services"
)

type PlanHandler struct {
	Planner  *services.Planner
	Vehicles ports.VehicleRepository
	Routes   ports.RouteRepository
}

// Plan runs the full pipeline for one request: waypoint validation,
// order search, toll matching, cost estimation and persistence.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Origin.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "origin name is required")
		return
	}
	if req.VehicleID < 1 {
		writeError(w, r, http.StatusBadRequest, "vehicle_id is required")
		return
	}

	vehicle, err := h.Vehicles.GetVehicle(r.Context(), req.VehicleID)
	if err != nil {
		if errors.Is(err, ports.ErrVehicleNotFound) {
			writeError(w, r, http.StatusBadRequest, "unknown vehicle_id")
			return
		}
		log.Printf("get vehicle failed: id=%d err=%v", req.VehicleID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	svcReq := services.PlanRequest{
		Origin:                    toLocation(req.Origin, true),
		Destinations:              make([]domain.Location, 0, len(req.Destinations)),
		Vehicle:                   vehicle,
		Optimize:                  req.Optimize,
		FixedTotalDistanceMeters:  req.FixedTotalDistanceMeters,
		FixedTotalDurationSeconds: req.FixedTotalDurationSeconds,
	}
	for _, d := range req.Destinations {
		svcReq.Destinations = append(svcReq.Destinations, toLocation(d, false))
	}

	result, err := h.Planner.Plan(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, "invalid route request")
		case errors.Is(err, ports.ErrUnavailable):
			writeError(w, r, http.StatusBadGateway, "routing provider unavailable")
		default:
			log.Printf("plan route failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	routeID := 0
	if h.Routes != nil {
		id, err := h.Routes.SaveRoute(r.Context(), result)
		if err != nil {
			// Persistence is best-effort: the computed route is still
			// returned to the caller.
			log.Printf("save route failed: %v", err)
		} else {
			routeID = id
		}
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(routeID, result))
}

func toLocation(in dto.LocationRequest, isOrigin bool) domain.Location {
	return domain.Location{
		ID:       in.ID,
		Name:     in.Name,
		Address:  in.Address,
		CEP:      in.CEP,
		Coords:   domain.Coordinates{Lon: in.Lng, Lat: in.Lat},
		IsOrigin: isOrigin,
	}
}

func toPlanResponse(routeID int, result *domain.RouteResult) dto.PlanResponse {
	res := dto.PlanResponse{
		RouteID:              routeID,
		OrderedWaypoints:     make([]dto.WaypointResponse, 0, len(result.OrderedWaypoints)),
		Legs:                 make([]dto.LegResponse, 0, len(result.Legs)),
		TotalDistanceMeters:  result.TotalDistanceMeters,
		TotalDurationSeconds: result.TotalDurationSeconds,
		MatchedTolls:         make([]dto.TollResponse, 0, len(result.MatchedTolls)),
		Costs: dto.CostResponse{
			FuelLiters: result.Costs.FuelLiters,
			FuelCost:   result.Costs.FuelCost,
			TollCost:   result.Costs.TollCost,
			TotalCost:  result.Costs.TotalCost,
		},
		Degraded: result.Degraded,
		Warning:  result.Warning,
	}

	for _, wp := range result.OrderedWaypoints {
		res.OrderedWaypoints = append(res.OrderedWaypoints, dto.WaypointResponse{
			ID:       wp.ID,
			Name:     wp.Name,
			Address:  wp.Address,
			Lat:      wp.Coords.Lat,
			Lng:      wp.Coords.Lon,
			IsOrigin: wp.IsOrigin,
		})
	}
	for _, leg := range result.Legs {
		res.Legs = append(res.Legs, dto.LegResponse{
			StartName:       leg.Start.Name,
			EndName:         leg.End.Name,
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
			Instructions:    leg.Instructions,
		})
	}
	for _, t := range result.MatchedTolls {
		res.MatchedTolls = append(res.MatchedTolls, dto.TollResponse{
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

	return res
}
