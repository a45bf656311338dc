package dto

type VehicleResponse struct {
	VehicleID        int     `json:"vehicle_id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	FuelEfficiency   float64 `json:"fuel_efficiency"`
	FuelCostPerLiter float64 `json:"fuel_cost_per_liter"`
	TollMultiplier   float64 `json:"toll_multiplier"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

type TollResponse struct {
	TollID       int     `json:"toll_id,omitempty"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RoadName     string  `json:"road_name,omitempty"`
	Cost         float64 `json:"cost"`
	Restrictions string  `json:"restrictions,omitempty"`
	Source       string  `json:"source,omitempty"`
}

type ListTollsResponse struct {
	Tolls []TollResponse `json:"tolls"`
}

type RouteResponse struct {
	RouteID              int      `json:"route_id"`
	WaypointIDs          []int    `json:"waypoint_ids"`
	WaypointNames        []string `json:"waypoint_names"`
	TotalDistanceMeters  int      `json:"total_distance_meters"`
	TotalDurationSeconds int      `json:"total_duration_seconds"`
	FuelCost             float64  `json:"fuel_cost"`
	TollCost             float64  `json:"toll_cost"`
	TotalCost            float64  `json:"total_cost"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}
