package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/dualdiff/internal/jacobian"
)

// GridSearch runs a solver from every point of a Cartesian grid of starting
// coordinates and keeps the run with the lowest objective value.
type GridSearch struct {
	solver Solver
	axes   [][]float64
}

// SearchResult is the best run of a grid search. Failures holds the errors of
// starts whose runs failed; they do not abort the search.
type SearchResult struct {
	Best     *Result
	Start    []float64
	Runs     int
	Failures []error
}

func NewGridSearch(solver Solver, axes [][]float64) *GridSearch {
	return &GridSearch{solver: solver, axes: axes}
}

func (g *GridSearch) Search(ctx context.Context, f jacobian.ScalarFunc) (*SearchResult, error) {
	if len(g.axes) == 0 {
		return nil, ErrInvalidStart
	}
	for _, axis := range g.axes {
		if len(axis) == 0 {
			return nil, ErrInvalidStart
		}
	}

	sr := &SearchResult{}
	best := math.Inf(1)
	if err := g.searchRecursive(ctx, 0, make([]float64, 0, len(g.axes)), f, &best, sr); err != nil {
		return nil, err
	}
	if sr.Best == nil {
		return sr, errors.Join(sr.Failures...)
	}
	return sr, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current []float64,
	f jacobian.ScalarFunc,
	best *float64,
	sr *SearchResult,
) error {
	if depth == len(g.axes) {
		start := append([]float64(nil), current...)
		sr.Runs++

		result, err := g.solver.Minimize(ctx, f, start)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			sr.Failures = append(sr.Failures, err)
			return nil
		}

		if result.Value < *best {
			*best = result.Value
			sr.Best = result
			sr.Start = start
		}
		return nil
	}

	for _, val := range g.axes[depth] {
		if err := g.searchRecursive(ctx, depth+1, append(current, val), f, best, sr); err != nil {
			return err
		}
	}
	return nil
}
