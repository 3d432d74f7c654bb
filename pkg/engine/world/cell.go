// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based placement game:
// cell indices, grid layouts, the tilemap content store and the occupancy
// view the placement rules query.
package world

import "fmt"

// CellIndex identifies one cell of the addressable grid.
// It is comparable and used directly as a map key.
type CellIndex struct {
	X int
	Y int
}

// Cell is shorthand for building a CellIndex
func Cell(x, y int) CellIndex {
	return CellIndex{X: x, Y: y}
}

// Add returns the component-wise sum of two indices
func (c CellIndex) Add(o CellIndex) CellIndex {
	return CellIndex{X: c.X + o.X, Y: c.Y + o.Y}
}

// Step returns the index adjacent to c in the given direction
func (c CellIndex) Step(dir Direction) CellIndex {
	dx, dy := dir.Delta()
	return CellIndex{X: c.X + dx, Y: c.Y + dy}
}

// Neighbors returns the four orthogonally adjacent indices
func (c CellIndex) Neighbors() []CellIndex {
	neighbors := make([]CellIndex, 0, 4)
	for _, dir := range AllDirections() {
		neighbors = append(neighbors, c.Step(dir))
	}
	return neighbors
}

func (c CellIndex) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
