package game

import (
	"fmt"
	"math"
)

// Cost is the price of entering a cell.
type Cost uint32

// Impassable marks a cell the path search never enters.
const Impassable Cost = math.MaxUint32

// CostGrid is the authoritative movement-cost map. A cell holds the cost of
// the building on it when there is one, otherwise the terrain tile's cost;
// which of the two applies is tracked by the map's build layer, not here.
type CostGrid struct {
	Dims
	cells []Cost
}

// NewCostGrid creates a grid with every cell set to fill. Non-positive
// dimensions are a programming error and panic.
func NewCostGrid(width, height int, fill Cost) *CostGrid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("game: NewCostGrid(%d, %d): %v", width, height, ErrInvalidDimensions))
	}
	cells := make([]Cost, width*height)
	for i := range cells {
		cells[i] = fill
	}
	return &CostGrid{Dims: Dims{Width: width, Height: height}, cells: cells}
}

// Get returns the cost at (x, y).
func (g *CostGrid) Get(x, y int) (Cost, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	return g.cells[g.Index(x, y)], nil
}

// At returns the cost at p, or Impassable outside the grid.
func (g *CostGrid) At(p Pos) Cost {
	if !g.InBounds(p.X, p.Y) {
		return Impassable
	}
	return g.cells[g.Index(p.X, p.Y)]
}

// Passable reports whether p is inside the grid and not Impassable.
func (g *CostGrid) Passable(p Pos) bool {
	return g.At(p) != Impassable
}

// SetBuildingCost overwrites the cell with a building's cost.
func (g *CostGrid) SetBuildingCost(x, y int, c Cost) error {
	return g.set(x, y, c)
}

// RestoreTerrainCost puts the underlying terrain cost back after a building
// is cleared.
func (g *CostGrid) RestoreTerrainCost(x, y int, terrain Cost) error {
	return g.set(x, y, terrain)
}

func (g *CostGrid) set(x, y int, c Cost) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	g.cells[g.Index(x, y)] = c
	return nil
}

// Cells exposes the backing slice for read-only bulk access (renderers, tests).
func (g *CostGrid) Cells() []Cost { return g.cells }
