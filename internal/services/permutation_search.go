package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

// MaxPermutationDestinations bounds the factorial search. Beyond it
// the search degrades to the input order rather than exploding; 8
// destinations already mean 40320 evaluations.
const MaxPermutationDestinations = 8

type SearchOptions struct {
	// Bounded wait per candidate evaluation. Zero disables the extra
	// bound and relies on the caller's context alone.
	EvalTimeout time.Duration

	// Pause between consecutive evaluations, a politeness policy
	// toward the routing service's rate limits, not a correctness
	// requirement.
	RequestDelay time.Duration

	// Progress, when set, is called after every attempted evaluation
	// with (evaluated, total) so callers can drive an indicator.
	Progress func(evaluated, total int)
}

// OptimizeOrder chooses the visiting order of destinations that
// minimizes total route distance from a fixed origin.
//
// For n <= 1 the input is the only order and no search runs. For
// 1 < n <= MaxPermutationDestinations every permutation is evaluated
// sequentially, tracking the minimum total distance with first-found
// winning ties (the enumeration starts at the input order, so the
// result is stable). For larger n the search degrades to evaluating
// the input order once, returned tagged Unoptimized.
//
// A failed candidate is skipped; only when every candidate fails does
// the search fail with ErrNoViableRoute. ports.ErrUnavailable from the
// evaluator aborts the whole search immediately.
func OptimizeOrder(
	ctx context.Context,
	origin domain.Location,
	destinations []domain.Location,
	evaluator ports.RouteEvaluator,
	opts SearchOptions,
) (*domain.CandidateOrder, error) {
	if !origin.Coords.Valid() {
		return nil, fmt.Errorf("optimize order: origin %q has malformed coordinates: %w", origin.Name, ErrInvalidInput)
	}
	for _, d := range destinations {
		if !d.Coords.Valid() {
			return nil, fmt.Errorf("optimize order: destination %q has malformed coordinates: %w", d.Name, ErrInvalidInput)
		}
	}

	n := len(destinations)

	if n == 0 {
		return &domain.CandidateOrder{Waypoints: []domain.Location{}}, nil
	}

	if n == 1 || n > MaxPermutationDestinations {
		if n > MaxPermutationDestinations {
			log.Printf("optimize: n=%d exceeds permutation limit %d, keeping input order", n, MaxPermutationDestinations)
		}
		return evaluateSingleOrder(ctx, origin, destinations, evaluator, opts, n > MaxPermutationDestinations)
	}

	total := factorial(n)
	evaluated := 0

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var best *domain.CandidateOrder

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		order := pickOrder(destinations, idx)

		eval, err := evaluateCandidate(ctx, evaluator, origin, order, opts.EvalTimeout)
		evaluated++
		if opts.Progress != nil {
			opts.Progress(evaluated, total)
		}

		switch {
		case err == nil:
			if best == nil || eval.TotalDistanceMeters < best.TotalDistanceMeters {
				best = candidateFrom(order, eval)
			}
		case errors.Is(err, ports.ErrUnavailable):
			return nil, fmt.Errorf("optimize order: %w", err)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			// Per-candidate failure is non-fatal; the candidate is
			// simply excluded from the minimum comparison.
			log.Printf("optimize: candidate %d/%d failed, skipping: %v", evaluated, total, err)
		}

		if !nextPermutation(idx) {
			break
		}

		if opts.RequestDelay > 0 {
			if err := sleepCtx(ctx, opts.RequestDelay); err != nil {
				return nil, err
			}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("optimize order: all %d candidates failed: %w", total, ErrNoViableRoute)
	}

	return best, nil
}

// evaluateSingleOrder handles the degenerate n=1 case and the
// beyond-limit degraded mode: exactly one evaluation of the input
// order.
func evaluateSingleOrder(
	ctx context.Context,
	origin domain.Location,
	destinations []domain.Location,
	evaluator ports.RouteEvaluator,
	opts SearchOptions,
	unoptimized bool,
) (*domain.CandidateOrder, error) {
	eval, err := evaluateCandidate(ctx, evaluator, origin, destinations, opts.EvalTimeout)
	if opts.Progress != nil {
		opts.Progress(1, 1)
	}
	if err != nil {
		if errors.Is(err, ports.ErrUnavailable) {
			return nil, fmt.Errorf("optimize order: %w", err)
		}
		return nil, fmt.Errorf("optimize order: evaluate input order: %v: %w", err, ErrNoViableRoute)
	}

	c := candidateFrom(destinations, eval)
	c.Unoptimized = unoptimized
	return c, nil
}

func evaluateCandidate(
	ctx context.Context,
	evaluator ports.RouteEvaluator,
	origin domain.Location,
	order []domain.Location,
	timeout time.Duration,
) (*ports.RouteEvaluation, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return evaluator.EvaluateRoute(ctx, origin, order)
}

func candidateFrom(order []domain.Location, eval *ports.RouteEvaluation) *domain.CandidateOrder {
	waypoints := make([]domain.Location, len(order))
	copy(waypoints, order)
	return &domain.CandidateOrder{
		Waypoints:            waypoints,
		Legs:                 eval.Legs,
		TotalDistanceMeters:  eval.TotalDistanceMeters,
		TotalDurationSeconds: eval.TotalDurationSeconds,
		ProviderTolls:        eval.Tolls,
	}
}

func pickOrder(destinations []domain.Location, idx []int) []domain.Location {
	order := make([]domain.Location, len(idx))
	for i, j := range idx {
		order[i] = destinations[j]
	}
	return order
}

// nextPermutation advances idx to the next lexicographic permutation,
// returning false once the sequence wraps. Starting from the identity
// permutation this enumerates all n! orders exactly once.
func nextPermutation(idx []int) bool {
	n := len(idx)
	i := n - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := n - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]

	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return true
}

func factorial(n int) int {
	out := 1
	for i := 2; i <= n; i++ {
		out *= i
	}
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
