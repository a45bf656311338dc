package services

import (
	"regexp"
	"strings"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/geo"
)

// Instruction keywords that indicate a toll plaza, compared after
// NormalizeCityName so accents never matter.
var tollKeywords = []string{"praca de pedagio", "pedagio", "toll"}

// Matches Brazilian highway identifiers such as "SP-225" or "BR153".
var highwayPattern = regexp.MustCompile(`\b([A-Z]{2})-?(\d{3})\b`)

// Cities whose toll plazas rarely appear in provider metadata or
// instruction text. The plaza is resolved from the catalog by city
// name, so operator naming conventions ("Pedágio Jaú", "Praça de
// Pedágio SP-225 Jaú") never matter. Kept sorted for stable output.
var tollCities = []string{
	"barra bonita",
	"brotas",
	"dois corregos",
	"jau",
	"ribeirao preto",
}

// Last-resort city-pair cases: routes between these endpoint cities
// always cross a plaza in the named city even when every other
// strategy misses.
var cityPairTollCity = map[string]string{
	"dois corregos|jau":    "dois corregos",
	"dois corregos|brotas": "brotas",
}

// Inputs for one matching run. Legs come from the winning candidate;
// ProviderTolls is whatever the routing provider surfaced directly.
type TollMatchInput struct {
	Legs          []domain.RouteLeg
	ProviderTolls []domain.TollPoint
}

// MatchTolls returns the deduplicated subset of the catalog relevant
// to the given route.
//
// Five independent strategies run in fixed priority order, each hit
// deduplicated against all prior ones: provider metadata, instruction
// text keywords, highway-code correlation, endpoint city correlation,
// and a known city-pair fallback. Every strategy is advisory; a miss
// in one never blocks the next, and an empty result is a valid
// outcome, not an error.
func MatchTolls(in TollMatchInput, catalog []domain.TollPoint) []domain.TollPoint {
	matched := make([]domain.TollPoint, 0, 4)

	add := func(t domain.TollPoint) {
		if geo.TollExistsIn(matched, t.Lat, t.Lng) {
			return
		}
		matched = append(matched, t)
	}

	// 1. Direct toll records from the routing provider.
	for _, t := range in.ProviderTolls {
		t.Source = domain.TollSourceAPI
		add(t)
	}

	// 2. Toll mentions in turn-by-turn instruction text. The leg start
	// coordinate stands in for the plaza position; when a catalog toll
	// sits within dedup range of it, prefer the catalog record for its
	// tariff data.
	for _, leg := range in.Legs {
		for _, instruction := range leg.Instructions {
			if !mentionsToll(instruction) {
				continue
			}
			lat, lng := leg.Start.Coords.Lat, leg.Start.Coords.Lon
			if t, ok := catalogTollNear(catalog, lat, lng); ok {
				t.Source = domain.TollSourceInstruction
				add(t)
				continue
			}
			add(domain.TollPoint{
				Name:   "Pedágio (identificado nas instruções)",
				Lat:    lat,
				Lng:    lng,
				Source: domain.TollSourceInstruction,
			})
		}
	}

	// 3. Highway identifiers in instruction text, filtered to catalog
	// tolls lying near at least one leg's start-end line.
	for _, code := range highwayCodes(in.Legs) {
		for _, t := range catalog {
			if !strings.Contains(normalizeRoad(t.RoadName), code) {
				continue
			}
			if !tollNearAnyLeg(t, in.Legs) {
				continue
			}
			t.Source = domain.TollSourceKnownHighway
			add(t)
		}
	}

	// 4. Known city names in endpoint addresses or instruction text.
	text := addressAndInstructionText(in.Legs)
	for _, city := range tollCities {
		if !containsCity(text, city) {
			continue
		}
		if t, ok := catalogTollForCity(catalog, city); ok {
			t.Source = domain.TollSourceCitySpecific
			add(t)
		}
	}

	// 5. City-pair fallback when nothing else matched: low-confidence,
	// added unconditionally for the known pair.
	if len(matched) == 0 && len(in.Legs) > 0 {
		first := geo.NormalizeCityName(in.Legs[0].Start.Name)
		last := geo.NormalizeCityName(in.Legs[len(in.Legs)-1].End.Name)
		for _, key := range []string{first + "|" + last, last + "|" + first} {
			city, ok := cityPairTollCity[key]
			if !ok {
				continue
			}
			if t, found := catalogTollForCity(catalog, city); found {
				t.Source = domain.TollSourceCitySpecific
				add(t)
				break
			}
		}
	}

	return matched
}

func mentionsToll(instruction string) bool {
	n := geo.NormalizeCityName(instruction)
	for _, kw := range tollKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

// highwayCodes extracts normalized highway identifiers ("SP225") from
// every instruction across the legs, first occurrence order, deduped.
func highwayCodes(legs []domain.RouteLeg) []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0, 4)
	for _, leg := range legs {
		for _, instruction := range leg.Instructions {
			for _, m := range highwayPattern.FindAllStringSubmatch(strings.ToUpper(instruction), -1) {
				code := m[1] + m[2]
				if _, ok := seen[code]; ok {
					continue
				}
				seen[code] = struct{}{}
				codes = append(codes, code)
			}
		}
	}
	return codes
}

// normalizeRoad uppercases a road name and strips separators so
// "sp-225" and "SP 225" both reduce to "SP225".
func normalizeRoad(road string) string {
	road = strings.ToUpper(road)
	road = strings.ReplaceAll(road, "-", "")
	road = strings.ReplaceAll(road, " ", "")
	return road
}

func tollNearAnyLeg(t domain.TollPoint, legs []domain.RouteLeg) bool {
	for _, leg := range legs {
		if geo.PointNearLine(
			t.Lat, t.Lng,
			leg.Start.Coords.Lat, leg.Start.Coords.Lon,
			leg.End.Coords.Lat, leg.End.Coords.Lon,
			geo.DefaultNearLineDegrees,
		) {
			return true
		}
	}
	return false
}

func catalogTollNear(catalog []domain.TollPoint, lat, lng float64) (domain.TollPoint, bool) {
	for _, t := range catalog {
		if geo.TollExistsIn([]domain.TollPoint{t}, lat, lng) {
			return t, true
		}
	}
	return domain.TollPoint{}, false
}

// containsCity reports whether the normalized text contains the city
// as whole words, so "jau" never matches inside a longer name.
func containsCity(normalizedText, city string) bool {
	return strings.Contains(" "+normalizedText+" ", " "+city+" ")
}

// catalogTollForCity finds the catalog toll whose plaza name mentions
// the city.
func catalogTollForCity(catalog []domain.TollPoint, city string) (domain.TollPoint, bool) {
	for _, t := range catalog {
		if containsCity(geo.NormalizeCityName(t.Name), city) {
			return t, true
		}
	}
	return domain.TollPoint{}, false
}

// addressAndInstructionText concatenates the normalized endpoint
// addresses and instruction text of a route for city-name scanning.
// Stop names are deliberately left out: those feed the city-pair
// fallback instead.
func addressAndInstructionText(legs []domain.RouteLeg) string {
	var b strings.Builder
	for _, leg := range legs {
		b.WriteString(geo.NormalizeCityName(leg.Start.Address))
		b.WriteByte(' ')
		b.WriteString(geo.NormalizeCityName(leg.End.Address))
		b.WriteByte(' ')
		for _, instruction := range leg.Instructions {
			b.WriteString(geo.NormalizeCityName(instruction))
			b.WriteByte(' ')
		}
	}
	return b.String()
}
