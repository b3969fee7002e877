package model

import "errors"

var (
	// ErrInvalidSize indicates a grid with no rows or a width smaller than its row count.
	ErrInvalidSize = errors.New("model: grid needs at least one row and width >= rows")
	// ErrOutOfBounds indicates a position or pixel outside the grid.
	ErrOutOfBounds = errors.New("model: position out of bounds")
	// ErrStartExists is returned when a start is assigned while one is already set.
	ErrStartExists = errors.New("model: start already assigned")
	// ErrEndExists is returned when an end is assigned while one is already set.
	ErrEndExists = errors.New("model: end already assigned")
	// ErrSameCell is returned when start and end would share a cell.
	ErrSameCell = errors.New("model: start and end must be different cells")
	// ErrOccupied is returned when a barrier is placed on start or end.
	ErrOccupied = errors.New("model: cell holds start or end")
	// ErrNoStart indicates the board has no start cell.
	ErrNoStart = errors.New("model: start not assigned")
	// ErrNoEnd indicates the board has no end cell.
	ErrNoEnd = errors.New("model: end not assigned")
	// ErrBadLayout indicates a malformed text layout.
	ErrBadLayout = errors.New("model: malformed board layout")
)
