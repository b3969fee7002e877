package model

import (
	"fmt"
	"strings"
)

// NewGrid builds a rows x rows grid of empty cells for a square canvas of
// the given pixel width.
func NewGrid(rows, width int) (*Grid, error) {
	if rows < 1 || width < rows {
		return nil, fmt.Errorf("%w: rows=%d width=%d", ErrInvalidSize, rows, width)
	}
	matrix := make([][]*Cell, 0, rows)
	for r := 0; r < rows; r++ {
		line := make([]*Cell, 0, rows)
		for c := 0; c < rows; c++ {
			line = append(line, &Cell{Row: r, Col: c})
		}
		matrix = append(matrix, line)
	}
	return &Grid{
		Rows:     rows,
		Width:    width,
		CellSize: width / rows,
		Matrix:   matrix,
	}, nil
}

func (c *Cell) Pos() Position {
	return Position{Row: c.Row, Col: c.Col}
}

func (c *Cell) Classify(k Kind) {
	c.Kind = k
}

func (c *Cell) Is(k Kind) bool {
	return c.Kind == k
}

func (c *Cell) Reset() {
	c.Kind = Empty
}

// UpdateNeighbors recomputes the orthogonal, non-barrier neighbours of c.
// Order is down, up, right, left.
func (c *Cell) UpdateNeighbors(g *Grid) {
	c.Neighbors = c.Neighbors[:0]
	if c.Row < g.Rows-1 && !g.Matrix[c.Row+1][c.Col].Is(Barrier) {
		c.Neighbors = append(c.Neighbors, g.Matrix[c.Row+1][c.Col])
	}
	if c.Row > 0 && !g.Matrix[c.Row-1][c.Col].Is(Barrier) {
		c.Neighbors = append(c.Neighbors, g.Matrix[c.Row-1][c.Col])
	}
	if c.Col < g.Rows-1 && !g.Matrix[c.Row][c.Col+1].Is(Barrier) {
		c.Neighbors = append(c.Neighbors, g.Matrix[c.Row][c.Col+1])
	}
	if c.Col > 0 && !g.Matrix[c.Row][c.Col-1].Is(Barrier) {
		c.Neighbors = append(c.Neighbors, g.Matrix[c.Row][c.Col-1])
	}
}

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Rows
}

func (g *Grid) CellAt(row, col int) (*Cell, error) {
	if !g.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, row, col, g.Rows, g.Rows)
	}
	return g.Matrix[row][col], nil
}

// Contains reports whether c is the cell this grid holds at c's position.
func (g *Grid) Contains(c *Cell) bool {
	return c != nil && g.InBounds(c.Row, c.Col) && g.Matrix[c.Row][c.Col] == c
}

// RefreshNeighbors must run after the last edit and before a search.
func (g *Grid) RefreshNeighbors() {
	g.Each(func(c *Cell) { c.UpdateNeighbors(g) })
}

// ClearSearch turns Open, Closed and Path cells back to Empty.
func (g *Grid) ClearSearch() {
	g.Each(func(c *Cell) {
		switch c.Kind {
		case Open, Closed, Path:
			c.Reset()
		}
	})
}

func (g *Grid) Each(f func(c *Cell)) {
	for _, line := range g.Matrix {
		for _, c := range line {
			f(c)
		}
	}
}

// Kinds returns a copy of every cell classification, indexed [row][col].
func (g *Grid) Kinds() [][]Kind {
	kinds := make([][]Kind, g.Rows)
	for r, line := range g.Matrix {
		kinds[r] = make([]Kind, len(line))
		for c, cell := range line {
			kinds[r][c] = cell.Kind
		}
	}
	return kinds
}

func (g *Grid) String() string {
	var sb strings.Builder
	for _, line := range g.Matrix {
		for _, c := range line {
			sb.WriteRune(c.Kind.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CellFromPixel maps a pixel inside a square canvas of the given width to
// the row and column of the cell under it.
func CellFromPixel(x, y, rows, width int) (int, int, error) {
	if rows < 1 || width < rows {
		return 0, 0, fmt.Errorf("%w: rows=%d width=%d", ErrInvalidSize, rows, width)
	}
	gap := width / rows
	if x < 0 || y < 0 {
		return 0, 0, fmt.Errorf("%w: pixel (%d,%d)", ErrOutOfBounds, x, y)
	}
	row, col := y/gap, x/gap
	if row >= rows || col >= rows {
		return 0, 0, fmt.Errorf("%w: pixel (%d,%d)", ErrOutOfBounds, x, y)
	}
	return row, col, nil
}

func NewBoard(rows, width int) (*Board, error) {
	g, err := NewGrid(rows, width)
	if err != nil {
		return nil, err
	}
	return &Board{Grid: g}, nil
}

// Rebuild replaces the grid with a fresh one of the same size and drops
// the start and end references together with it.
func (b *Board) Rebuild() error {
	g, err := NewGrid(b.Grid.Rows, b.Grid.Width)
	if err != nil {
		return err
	}
	b.Grid = g
	b.Start = nil
	b.End = nil
	return nil
}

func (b *Board) SetStart(row, col int) error {
	cell, err := b.Grid.CellAt(row, col)
	if err != nil {
		return err
	}
	if b.End == cell {
		return ErrSameCell
	}
	if b.Start != nil {
		if b.Start == cell {
			return nil
		}
		return fmt.Errorf("%w: at %v", ErrStartExists, b.Start.Pos())
	}
	cell.Classify(Start)
	b.Start = cell
	return nil
}

func (b *Board) SetEnd(row, col int) error {
	cell, err := b.Grid.CellAt(row, col)
	if err != nil {
		return err
	}
	if b.Start == cell {
		return ErrSameCell
	}
	if b.End != nil {
		if b.End == cell {
			return nil
		}
		return fmt.Errorf("%w: at %v", ErrEndExists, b.End.Pos())
	}
	cell.Classify(End)
	b.End = cell
	return nil
}

func (b *Board) SetBarrier(row, col int) error {
	cell, err := b.Grid.CellAt(row, col)
	if err != nil {
		return err
	}
	if cell == b.Start || cell == b.End {
		return fmt.Errorf("%w: %v", ErrOccupied, cell.Pos())
	}
	cell.Classify(Barrier)
	return nil
}

// Erase resets a cell and forgets it as start or end.
func (b *Board) Erase(row, col int) error {
	cell, err := b.Grid.CellAt(row, col)
	if err != nil {
		return err
	}
	cell.Reset()
	if cell == b.Start {
		b.Start = nil
	} else if cell == b.End {
		b.End = nil
	}
	return nil
}

// Place applies a primary click: the first free endpoint is assigned,
// then every other cell becomes a barrier. Clicking an endpoint does nothing.
func (b *Board) Place(row, col int) error {
	cell, err := b.Grid.CellAt(row, col)
	if err != nil {
		return err
	}
	switch {
	case b.Start == nil && cell != b.End:
		return b.SetStart(row, col)
	case b.End == nil && cell != b.Start:
		return b.SetEnd(row, col)
	case cell != b.Start && cell != b.End:
		cell.Classify(Barrier)
	}
	return nil
}

func (b *Board) Ready() error {
	if b.Start == nil {
		return ErrNoStart
	}
	if b.End == nil {
		return ErrNoEnd
	}
	return nil
}
