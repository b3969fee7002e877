package astar

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/zucenko/pathgrid/model"
)

// scores maps a cell to a cost; absent cells read as Infinity.
type scores map[*model.Cell]int

func (s scores) get(c *model.Cell) int {
	if v, ok := s[c]; ok {
		return v
	}
	return Infinity
}

// runner holds the mutable state of one search.
type runner struct {
	start, end *model.Cell
	step       StepFunc
	heuristic  Heuristic

	gScore   scores
	fScore   scores
	cameFrom map[*model.Cell]*model.Cell

	open    frontier
	pending map[*model.Cell]*frontierItem
	settled map[*model.Cell]bool
	count   int

	result Result
}

func newRunner(start, end *model.Cell, step StepFunc, heuristic Heuristic) *runner {
	return &runner{
		start:     start,
		end:       end,
		step:      step,
		heuristic: heuristic,
		gScore:    make(scores),
		fScore:    make(scores),
		cameFrom:  make(map[*model.Cell]*model.Cell),
		open:      make(frontier, 0),
		pending:   make(map[*model.Cell]*frontierItem),
		settled:   make(map[*model.Cell]bool),
	}
}

func (r *runner) run(ctx context.Context) (Result, error) {
	r.gScore[r.start] = 0
	r.fScore[r.start] = r.heuristic(r.start.Pos(), r.end.Pos())
	heap.Init(&r.open)
	startItem := &frontierItem{cell: r.start, fScore: r.fScore[r.start], seq: r.count}
	heap.Push(&r.open, startItem)
	r.pending[r.start] = startItem

	for r.open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return r.done(), fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		current := heap.Pop(&r.open).(*frontierItem).cell
		delete(r.pending, current)
		r.settled[current] = true
		r.result.Expanded++
		r.result.Order = append(r.result.Order, current.Pos())

		if current == r.end {
			return r.reconstruct()
		}

		r.relax(current)

		if !r.step() {
			return r.done(), ErrCancelled
		}
		if current != r.start {
			r.mark(current, model.Closed)
		}
	}

	return r.done(), nil
}

// relax offers current as a predecessor to each neighbour. An improved
// cell still in the frontier is re-keyed in place and keeps its insertion
// sequence. Settled cells are skipped: with a consistent heuristic their
// g-score is already final.
func (r *runner) relax(current *model.Cell) {
	tentative := r.gScore.get(current) + 1
	for _, neighbor := range current.Neighbors {
		if r.settled[neighbor] || tentative >= r.gScore.get(neighbor) {
			continue
		}
		r.cameFrom[neighbor] = current
		r.gScore[neighbor] = tentative
		f := tentative + r.heuristic(neighbor.Pos(), r.end.Pos())
		r.fScore[neighbor] = f

		if item, inOpen := r.pending[neighbor]; inOpen {
			item.fScore = f
			heap.Fix(&r.open, item.indexInQueue)
			continue
		}
		r.count++
		item := &frontierItem{cell: neighbor, fScore: f, seq: r.count}
		heap.Push(&r.open, item)
		r.pending[neighbor] = item
		r.mark(neighbor, model.Open)
	}
}

// reconstruct walks came-from links back from end, painting every cell
// strictly between start and end as Path.
func (r *runner) reconstruct() (Result, error) {
	r.result.Found = true
	r.result.Cost = r.gScore.get(r.end)

	chain := []*model.Cell{r.end}
	for current := r.cameFrom[r.end]; current != nil; current = r.cameFrom[current] {
		chain = append(chain, current)
	}
	r.result.Path = make([]model.Position, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		r.result.Path = append(r.result.Path, chain[i].Pos())
	}

	for _, cell := range chain[1:] {
		if cell == r.start {
			break
		}
		r.mark(cell, model.Path)
		if !r.step() {
			return r.done(), ErrCancelled
		}
	}
	if r.end != r.start {
		r.end.Classify(model.End)
	}
	return r.done(), nil
}

// mark classifies c unless it is one of the endpoints.
func (r *runner) mark(c *model.Cell, k model.Kind) {
	if c == r.start || c == r.end {
		return
	}
	c.Classify(k)
}

func (r *runner) done() Result {
	r.result.CameFrom = make(map[model.Position]model.Position, len(r.cameFrom))
	for cell, prev := range r.cameFrom {
		r.result.CameFrom[cell.Pos()] = prev.Pos()
	}
	return r.result
}
