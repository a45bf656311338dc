package ports

import "context"

// Optional cache of route evaluations keyed by the exact waypoint
// sequence. Lets repeated optimization runs over the same working set
// skip external routing calls.
type EvalCache interface {
	// Get returns the cached evaluation and whether the key was found.
	Get(ctx context.Context, key string) (*RouteEvaluation, bool, error)
	Put(ctx context.Context, key string, eval *RouteEvaluation) error
}
