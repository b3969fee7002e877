package astar

import (
	"context"
	"errors"
	"math"

	"github.com/zucenko/pathgrid/model"
)

var (
	// ErrNilGrid is returned when Search is given no grid.
	ErrNilGrid = errors.New("astar: grid is nil")
	// ErrNoStart is returned when the start cell is missing.
	ErrNoStart = model.ErrNoStart
	// ErrNoEnd is returned when the end cell is missing.
	ErrNoEnd = model.ErrNoEnd
	// ErrForeignCell is returned when start or end does not belong to the grid.
	ErrForeignCell = errors.New("astar: cell does not belong to grid")
	// ErrCancelled is returned when the context ends or the step function asks to stop.
	ErrCancelled = errors.New("astar: search cancelled")
)

// Infinity is the score of a cell that has not been reached.
const Infinity = math.MaxInt

// StepFunc is called after every expansion and after every cell painted
// on the final path. Returning false stops the search.
type StepFunc func() bool

// Heuristic estimates the remaining cost between two positions.
// It must never overestimate and must be consistent.
type Heuristic func(from, to model.Position) int

// Manhattan is the L1 distance, exact on an open 4-connected unit grid.
func Manhattan(from, to model.Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Result contains the outcome of a search.
type Result struct {
	Found bool
	// Path runs from start to end inclusive. Empty when not found.
	Path []model.Position
	// Cost is the g-score of end, the number of moves on Path.
	Cost int
	// Expanded counts frontier pops.
	Expanded int
	// Order lists expanded cells in pop order.
	Order    []model.Position
	CameFrom map[model.Position]model.Position
}

// Options defines parameters for the search.
type Options struct {
	Heuristic Heuristic
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces Manhattan. A nil heuristic is ignored.
func WithHeuristic(h Heuristic) Option {
	return func(options *Options) {
		if h != nil {
			options.Heuristic = h
		}
	}
}

// Search runs A* from start to end over grid, whose neighbour lists must
// be fresh. A missing path is reported as Found == false with a nil error.
// On cancellation cells keep the classification they had at that moment.
func Search(
	ctx context.Context,
	grid *model.Grid,
	start, end *model.Cell,
	step StepFunc,
	options ...Option,
) (Result, error) {
	if grid == nil {
		return Result{}, ErrNilGrid
	}
	if start == nil {
		return Result{}, ErrNoStart
	}
	if end == nil {
		return Result{}, ErrNoEnd
	}
	if !grid.Contains(start) || !grid.Contains(end) {
		return Result{}, ErrForeignCell
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if step == nil {
		step = func() bool { return true }
	}

	searchOptions := Options{Heuristic: Manhattan}
	for _, option := range options {
		option(&searchOptions)
	}

	r := newRunner(start, end, step, searchOptions.Heuristic)
	return r.run(ctx)
}

// RunBoard prepares a board for a fresh run and searches it: previous
// search marks are cleared and neighbour lists recomputed.
func RunBoard(ctx context.Context, board *model.Board, step StepFunc, options ...Option) (Result, error) {
	if board == nil || board.Grid == nil {
		return Result{}, ErrNilGrid
	}
	if err := board.Ready(); err != nil {
		return Result{}, err
	}
	board.Grid.ClearSearch()
	board.Grid.RefreshNeighbors()
	return Search(ctx, board.Grid, board.Start, board.End, step, options...)
}
