package dto

type LocationRequest struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	CEP     string  `json:"cep"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type PlanRequest struct {
	Origin       LocationRequest   `json:"origin"`
	Destinations []LocationRequest `json:"destinations"`
	VehicleID    int               `json:"vehicle_id"`
	Optimize     bool              `json:"optimize"`

	// Pre-known totals to show when a manually ordered route cannot be
	// re-evaluated against the routing provider.
	FixedTotalDistanceMeters  int `json:"fixed_total_distance_meters"`
	FixedTotalDurationSeconds int `json:"fixed_total_duration_seconds"`
}

type WaypointResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	IsOrigin bool    `json:"is_origin"`
}

type LegResponse struct {
	StartName       string   `json:"start_name"`
	EndName         string   `json:"end_name"`
	DistanceMeters  int      `json:"distance_meters"`
	DurationSeconds int      `json:"duration_seconds"`
	Instructions    []string `json:"instructions,omitempty"`
}

type CostResponse struct {
	FuelLiters float64 `json:"fuel_liters"`
	FuelCost   float64 `json:"fuel_cost"`
	TollCost   float64 `json:"toll_cost"`
	TotalCost  float64 `json:"total_cost"`
}

type PlanResponse struct {
	RouteID              int                `json:"route_id,omitempty"`
	OrderedWaypoints     []WaypointResponse `json:"ordered_waypoints"`
	Legs                 []LegResponse      `json:"legs"`
	TotalDistanceMeters  int                `json:"total_distance_meters"`
	TotalDurationSeconds int                `json:"total_duration_seconds"`
	MatchedTolls         []TollResponse     `json:"matched_tolls"`
	Costs                CostResponse       `json:"costs"`
	Degraded             bool               `json:"degraded"`
	Warning              string             `json:"warning,omitempty"`
}
