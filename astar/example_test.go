package astar_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/zucenko/pathgrid/astar"
	"github.com/zucenko/pathgrid/model"
)

// ExampleRunBoard searches a 3×3 board with a barrier in the middle.
// 'x' marks expanded cells and '*' the reconstructed path.
func ExampleRunBoard() {
	b, err := model.ReadBoard(strings.NewReader("S..\n.#.\n..E\n"), 30)
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := astar.RunBoard(context.Background(), b, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("found=%v cost=%d expanded=%d\n", res.Found, res.Cost, res.Expanded)
	fmt.Print(b.Grid)
	// Output:
	// found=true cost=4 expanded=8
	// Sxx
	// *#x
	// **E
}

// ExampleSearch shows the precondition check on a missing end cell.
func ExampleSearch() {
	g, _ := model.NewGrid(2, 20)
	g.RefreshNeighbors()
	_, err := astar.Search(context.Background(), g, g.Matrix[0][0], nil, nil)
	fmt.Println(err)
	// Output:
	// model: end not assigned
}
