package game

import (
	"fmt"
	"math"
)

// TileSize is the edge length of one tile in world pixels.
const TileSize = 16

// Pos is an integer tile coordinate. It is comparable and used directly as a
// map key for search nodes and waypoints.
type Pos struct {
	X, Y int
}

// Pt is shorthand for Pos{x, y}.
func Pt(x, y int) Pos { return Pos{X: x, Y: y} }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns p shifted by o.
func (p Pos) Add(o Pos) Pos { return Pos{X: p.X + o.X, Y: p.Y + o.Y} }

// Shift returns p shifted by (dx, dy).
func (p Pos) Shift(dx, dy int) Pos { return Pos{X: p.X + dx, Y: p.Y + dy} }

// IsAdjacent reports whether o is one of the 8 neighbours of p.
func (p Pos) IsAdjacent(o Pos) bool {
	dx := abs(p.X - o.X)
	dy := abs(p.Y - o.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Dims describes a width x height grid. Every flat layer in the package
// (tiles, costs, buildings, edges) is indexed through Index.
type Dims struct {
	Width  int
	Height int
}

// InBounds reports whether (x, y) lies inside the grid.
func (d Dims) InBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// Index returns the flat slice index of (x, y): x + y*Width.
func (d Dims) Index(x, y int) int {
	return x + y*d.Width
}

// PosOf is the inverse of Index.
func (d Dims) PosOf(i int) Pos {
	return Pos{X: i % d.Width, Y: i / d.Width}
}

// Len is the number of cells in the grid.
func (d Dims) Len() int { return d.Width * d.Height }

func (d Dims) check(x, y int) error {
	if !d.InBounds(x, y) {
		return fmt.Errorf("(%d,%d) outside %dx%d: %w", x, y, d.Width, d.Height, ErrOutOfBounds)
	}
	return nil
}

// WorldToCell converts world pixel coordinates to the tile containing them.
func WorldToCell(wx, wy float64) Pos {
	return Pos{X: floorDiv(wx), Y: floorDiv(wy)}
}

func floorDiv(v float64) int {
	return int(math.Floor(v / TileSize))
}

// CellToWorld returns the world pixel centre of a tile.
func CellToWorld(p Pos) (float64, float64) {
	return float64(p.X*TileSize) + float64(TileSize)/2, float64(p.Y*TileSize) + float64(TileSize)/2
}

// CellAnchor returns the world pixel top-left corner of a tile.
func CellAnchor(p Pos) (float64, float64) {
	return float64(p.X * TileSize), float64(p.Y * TileSize)
}
