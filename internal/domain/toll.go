package domain

// How a toll point was associated with a route. Routing providers are
// inconsistent about surfacing toll metadata, so matches come from
// several independent detection strategies.
type TollSource string

const (
	TollSourceAPI          TollSource = "api"
	TollSourceInstruction  TollSource = "instruction-text"
	TollSourceKnownHighway TollSource = "known-highway"
	TollSourceCitySpecific TollSource = "city-specific"
)

// A toll booth or weighing station that may lie along a route.
//
// Identity for deduplication is geometric, not by ID: two toll points
// within 0.02 degrees on both axes are treated as the same physical
// plaza. The tolerance absorbs geocoding jitter across data sources.
type TollPoint struct {
	ID           int
	Name         string
	Lat          float64
	Lng          float64
	RoadName     string
	Cost         float64
	Restrictions string
	Source       TollSource
}
