// Package geo holds the pure geometric and text-normalization helpers
// shared by toll matching and route planning.
package geo

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"route-cost-service/internal/domain"
)

const (
	// Default threshold for PointNearLine, in degrees (~5 km).
	DefaultNearLineDegrees = 0.05

	// Per-axis tolerance for toll deduplication, in degrees (~1-2 km).
	// Absorbs geocoding jitter between toll data sources.
	TollDedupDegrees = 0.02
)

// NormalizeCityName lowercases, strips diacritics (NFD decomposition
// plus combining-mark removal), drops non-word characters and
// collapses whitespace. Total: never fails, empty input yields "".
//
// Used wherever two free-text place names must compare equal,
// e.g. "São Paulo" and "sao paulo".
func NormalizeCityName(s string) string {
	if s == "" {
		return ""
	}

	decomposed := norm.NFD.String(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from the decomposition
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// PointNearLine reports whether point P is within threshold degrees of
// the infinite line through A and B, using |A*px + B*py + C| / sqrt(A²+B²).
//
// This intentionally tests the infinite line rather than the finite
// segment, matching the long-standing matcher behavior: a point beyond
// the segment endpoints can still classify as near. Callers that need
// segment semantics must clamp themselves.
func PointNearLine(px, py, ax, ay, bx, by, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultNearLineDegrees
	}

	la := by - ay
	lb := ax - bx
	lc := bx*ay - ax*by

	den := math.Sqrt(la*la + lb*lb)
	if den == 0 {
		// A and B coincide; fall back to point distance.
		return math.Hypot(px-ax, py-ay) < threshold
	}

	return math.Abs(la*px+lb*py+lc)/den < threshold
}

// TollExistsIn reports whether any toll in the set lies within the
// dedup tolerance of (lat, lng) on both axes. Independent per-axis
// thresholds are a deliberately cheap test, not geometric distance.
func TollExistsIn(tolls []domain.TollPoint, lat, lng float64) bool {
	for _, t := range tolls {
		if math.Abs(t.Lat-lat) < TollDedupDegrees && math.Abs(t.Lng-lng) < TollDedupDegrees {
			return true
		}
	}
	return false
}
