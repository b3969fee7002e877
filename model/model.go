package model

import "fmt"

// Kind is the classification of a single cell.
type Kind int

const (
	Empty Kind = iota
	Barrier
	Start
	End
	Open
	Closed
	Path
)

func (k Kind) Name() string {
	switch k {
	case Empty:
		return "EMPTY"
	case Barrier:
		return "BARRIER"
	case Start:
		return "START"
	case End:
		return "END"
	case Open:
		return "OPEN"
	case Closed:
		return "CLOSED"
	case Path:
		return "PATH"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// Rune is the character used for k in text layouts.
func (k Kind) Rune() rune {
	switch k {
	case Barrier:
		return '#'
	case Start:
		return 'S'
	case End:
		return 'E'
	case Open:
		return 'o'
	case Closed:
		return 'x'
	case Path:
		return '*'
	default:
		return '.'
	}
}

// Position identifies a cell by row and column.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type Cell struct {
	Row, Col  int
	Kind      Kind
	Neighbors []*Cell
}

// Grid is a square matrix of cells indexed [row][col].
type Grid struct {
	Rows     int
	Width    int
	CellSize int
	Matrix   [][]*Cell
}

// Board owns a grid together with its start and end references.
type Board struct {
	Grid  *Grid
	Start *Cell
	End   *Cell
}
