package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"go.uber.org/atomic"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

// Planner orchestrates one full planning run: permutation search,
// toll matching, cost estimation and assembly. It also owns the
// "current displayed route", replaced atomically per completed run,
// and discards results of runs that were superseded while in flight.
type Planner struct {
	evaluator ports.RouteEvaluator
	catalog   ports.TollCatalog
	opts      SearchOptions

	// generation increases per Plan call; a run whose generation is no
	// longer current must not overwrite the displayed route.
	generation atomic.Int64

	mu      sync.Mutex
	current *domain.RouteResult
}

func NewPlanner(evaluator ports.RouteEvaluator, catalog ports.TollCatalog, opts SearchOptions) *Planner {
	return &Planner{
		evaluator: evaluator,
		catalog:   catalog,
		opts:      opts,
	}
}

type PlanRequest struct {
	Origin       domain.Location
	Destinations []domain.Location
	Vehicle      domain.VehicleProfile

	// Optimize false preserves the caller's order (e.g. the user
	// reordered stops by hand) and evaluates it once for legs.
	Optimize bool

	// Pre-known totals for a caller-fixed order; used when the
	// evaluator cannot supply legs so the result still shows numbers.
	FixedTotalDistanceMeters  int
	FixedTotalDurationSeconds int
}

// Plan runs the full pipeline and returns the assembled result.
//
// Search failure is not fatal: the unmodified input order is returned
// tagged degraded with a user-visible warning, since showing something
// beats showing nothing in a routing UI. Only invalid input or a
// cancelled context surface as errors.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*domain.RouteResult, error) {
	gen := p.generation.Inc()

	if !req.Origin.IsOrigin {
		return nil, fmt.Errorf("plan: request origin is not marked as origin: %w", ErrInvalidInput)
	}
	if err := req.Vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("plan: %v: %w", err, ErrInvalidInput)
	}

	order, warning, err := p.resolveOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	catalogTolls, err := p.catalog.ListTolls(ctx)
	if err != nil {
		// Toll detection is advisory: a catalog failure degrades to an
		// empty matched set rather than blocking route display.
		log.Printf("plan: toll catalog unavailable, matching skipped: %v", err)
		catalogTolls = nil
	}

	matched := MatchTolls(TollMatchInput{
		Legs:          order.Legs,
		ProviderTolls: order.ProviderTolls,
	}, catalogTolls)

	costs, err := EstimateCost(order.TotalDistanceMeters, req.Vehicle, matched)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	result := Assemble(req.Origin, order, matched, costs)
	result.Warning = warning

	// A slower, superseded run must not overwrite a newer result.
	if p.generation.Load() == gen {
		p.mu.Lock()
		p.current = result
		p.mu.Unlock()
	} else {
		log.Printf("plan: generation %d superseded, result discarded from display", gen)
	}

	return result, nil
}

// Current returns the most recently displayed result, nil before the
// first completed run.
func (p *Planner) Current() *domain.RouteResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// resolveOrder produces the visiting order for the request, falling
// back to the unmodified input order with a warning when the search
// cannot produce a viable candidate.
func (p *Planner) resolveOrder(ctx context.Context, req PlanRequest) (*domain.CandidateOrder, string, error) {
	if !req.Optimize {
		// The caller fixed the order deliberately; evaluate it once
		// for legs without tagging the result degraded.
		order, err := evaluateSingleOrder(ctx, req.Origin, req.Destinations, p.evaluator, p.opts, false)
		if err != nil {
			return p.fallbackOrder(ctx, req, err)
		}
		return order, "", nil
	}

	order, err := OptimizeOrder(ctx, req.Origin, req.Destinations, p.evaluator, p.opts)
	if err != nil {
		return p.fallbackOrder(ctx, req, err)
	}

	var warning string
	if order.Unoptimized {
		warning = "rota não otimizada: número de destinos acima do limite de busca"
	}
	return order, warning, nil
}

// fallbackOrder builds the degraded input-order candidate, with no
// legs and with fixed totals when the caller supplied them. Invalid
// input and cancellation still propagate.
func (p *Planner) fallbackOrder(ctx context.Context, req PlanRequest, cause error) (*domain.CandidateOrder, string, error) {
	if errors.Is(cause, ErrInvalidInput) || ctx.Err() != nil {
		return nil, "", cause
	}
	if !errors.Is(cause, ErrNoViableRoute) && !errors.Is(cause, ports.ErrUnavailable) {
		return nil, "", cause
	}

	log.Printf("plan: falling back to input order: %v", cause)

	waypoints := make([]domain.Location, len(req.Destinations))
	copy(waypoints, req.Destinations)

	order := &domain.CandidateOrder{
		Waypoints:            waypoints,
		TotalDistanceMeters:  req.FixedTotalDistanceMeters,
		TotalDurationSeconds: req.FixedTotalDurationSeconds,
		Unoptimized:          true,
	}

	warning := "não foi possível calcular a rota otimizada; exibindo a ordem informada"
	if errors.Is(cause, ports.ErrUnavailable) {
		warning = "serviço de rotas indisponível; exibindo a ordem informada"
	}
	return order, warning, nil
}
