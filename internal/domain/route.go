package domain

// One segment of a route between two consecutive stops.
// Legs are produced only by the external route evaluator; the core
// consumes them and never constructs them from scratch.
type RouteLeg struct {
	Start           Location
	End             Location
	DistanceMeters  int
	DurationSeconds int
	// Turn-by-turn instruction text, used by toll detection.
	Instructions []string
}

// One specific visiting order of destinations under consideration
// during optimization, paired with its evaluation once scored.
// Candidates are ephemeral: generated, scored and discarded except
// for the winner.
type CandidateOrder struct {
	// Destination Locations only; the origin is implicit and fixed.
	Waypoints            []Location
	Legs                 []RouteLeg
	TotalDistanceMeters  int
	TotalDurationSeconds int
	// Toll records the routing provider surfaced for this order, if any.
	ProviderTolls []TollPoint
	// Set when permutation search was skipped or failed and the input
	// order was kept as-is.
	Unoptimized bool
}

type CostBreakdown struct {
	FuelLiters float64
	FuelCost   float64
	TollCost   float64
	TotalCost  float64
}

// Final artifact of a planning run. Immutable: a new run supersedes
// the previous result rather than mutating it.
//
// Invariants: OrderedWaypoints[0] is the origin, MatchedTolls is a
// subset of the catalog filtered to Legs, and TotalDistanceMeters is
// the sum of the leg distances.
type RouteResult struct {
	OrderedWaypoints     []Location
	Legs                 []RouteLeg
	TotalDistanceMeters  int
	TotalDurationSeconds int
	MatchedTolls         []TollPoint
	Costs                CostBreakdown
	// Degraded is set when the result carries the unoptimized input
	// order (search failed or was skipped); Warning explains why.
	Degraded bool
	Warning  string
}

// Persisted summary of a planned route, as stored by the route
// repository. Waypoints are kept as an ordered ID list.
type StoredRoute struct {
	ID                   int
	WaypointIDs          []int
	WaypointNames        []string
	TotalDistanceMeters  int
	TotalDurationSeconds int
	FuelCost             float64
	TollCost             float64
	TotalCost            float64
}
