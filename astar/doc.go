// Package astar runs A* over a model.Grid.
//
// The grid is 4-connected with unit edge cost and neighbour lists are
// precomputed by model.Grid.RefreshNeighbors. Search classifies cells as it
// goes (Open, Closed, Path) and calls a step function after every expansion
// and after every path cell so a caller can render or record progress.
//
// Ties on f-score are broken by insertion order, so two runs over the same
// grid expand cells in the same order and return the same path.
package astar
