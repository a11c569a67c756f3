package game

import "fmt"

// EdgeMask records which orthogonal neighbours have a different terrain
// category. Renderers use it to pick transition decals.
type EdgeMask uint8

const (
	EdgeNorth EdgeMask = 1 << iota
	EdgeEast
	EdgeSouth
	EdgeWest
)

// Has reports whether every bit of e2 is set.
func (e EdgeMask) Has(e2 EdgeMask) bool { return e&e2 == e2 }

// Tile represents one cell of the terrain layer. Tiles do not change after
// generation.
type Tile struct {
	Category Category
	Variant  uint8   // visual sub-variant, no cost impact
	AssetID  uint32  // opaque renderer id
	ScreenX  float64 // world pixel anchor, x*TileSize
	ScreenY  float64 // world pixel anchor, y*TileSize
	Cost     Cost    // intrinsic terrain cost
}

// Map is the world's grid state: the terrain layer, the cost layer, the
// build layer and the edge layer, all indexed by Dims.Index.
type Map struct {
	Dims
	Seed int64

	tiles     []Tile
	edges     []EdgeMask
	buildings []*Building // nil = empty cell
	costs     *CostGrid
}

// TileAt returns the terrain tile at (x, y).
func (m *Map) TileAt(x, y int) (Tile, error) {
	if err := m.check(x, y); err != nil {
		return Tile{}, err
	}
	return m.tiles[m.Index(x, y)], nil
}

// BuildingAt returns the building at (x, y), or nil when the cell is empty.
func (m *Map) BuildingAt(x, y int) (*Building, error) {
	if err := m.check(x, y); err != nil {
		return nil, err
	}
	return m.buildings[m.Index(x, y)], nil
}

// Edges returns the transition mask of (x, y). Out of bounds returns 0.
func (m *Map) Edges(x, y int) EdgeMask {
	if !m.InBounds(x, y) {
		return 0
	}
	return m.edges[m.Index(x, y)]
}

// Costs returns the cost layer. The path finder borrows it read-only.
func (m *Map) Costs() *CostGrid { return m.costs }

// Tiles exposes the terrain layer for bulk reads.
func (m *Map) Tiles() []Tile { return m.tiles }

// CategoryCounts returns how many tiles fall in each terrain category.
func (m *Map) CategoryCounts() map[Category]int {
	counts := make(map[Category]int, categoryCount)
	for _, t := range m.tiles {
		counts[t.Category]++
	}
	return counts
}

// setBuilding places b on its cell and applies its cost. The cell must be
// empty and in bounds.
func (m *Map) setBuilding(b *Building) error {
	x, y := b.Pos.X, b.Pos.Y
	if err := m.check(x, y); err != nil {
		return err
	}
	i := m.Index(x, y)
	if prev := m.buildings[i]; prev != nil {
		return fmt.Errorf("%s at %s: %w", prev.Kind, b.Pos, ErrOccupiedCell)
	}
	if err := m.costs.SetBuildingCost(x, y, b.Cost); err != nil {
		return err
	}
	m.buildings[i] = b
	return nil
}

// removeBuilding empties (x, y) and restores the terrain cost.
func (m *Map) removeBuilding(x, y int) (*Building, error) {
	if err := m.check(x, y); err != nil {
		return nil, err
	}
	i := m.Index(x, y)
	b := m.buildings[i]
	if b == nil {
		return nil, fmt.Errorf("(%d,%d): %w", x, y, ErrEmptyCell)
	}
	if err := m.costs.RestoreTerrainCost(x, y, m.tiles[i].Cost); err != nil {
		return nil, err
	}
	m.buildings[i] = nil
	return b, nil
}

// computeEdges compares each cell's category with its four orthogonal
// neighbours. Cells on the border get no edge towards the outside.
func (m *Map) computeEdges() {
	type side struct {
		dx, dy int
		bit    EdgeMask
	}
	sides := [4]side{
		{0, -1, EdgeNorth},
		{1, 0, EdgeEast},
		{0, 1, EdgeSouth},
		{-1, 0, EdgeWest},
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cat := m.tiles[m.Index(x, y)].Category
			var e EdgeMask
			for _, s := range sides {
				nx, ny := x+s.dx, y+s.dy
				if !m.InBounds(nx, ny) {
					continue
				}
				if m.tiles[m.Index(nx, ny)].Category != cat {
					e |= s.bit
				}
			}
			m.edges[m.Index(x, y)] = e
		}
	}
}
