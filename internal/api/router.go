package api

import (
	"net/http"

	"route-cost-service/internal/api/handlers"
	"route-cost-service/internal/ports"
	"route-cost-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	planner *services.Planner,
	vehicles ports.VehicleRepository,
	catalog ports.TollCatalog,
	routes ports.RouteRepository,
) http.Handler {
	mux := http.NewServeMux()

	vehicleHandler := &handlers.VehicleHandler{Repo: vehicles}
	tollHandler := &handlers.TollHandler{Catalog: catalog}
	routeHandler := &handlers.RouteHandler{Repo: routes}
	planHandler := &handlers.PlanHandler{
		Planner:  planner,
		Vehicles: vehicles,
		Routes:   routes,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/vehicles", vehicleHandler.List)
	mux.HandleFunc("/tolls", tollHandler.List)
	mux.HandleFunc("/routes", routeHandler.List)
	mux.HandleFunc("/plan", planHandler.Plan)

	return loggingMiddleware(mux)
}
