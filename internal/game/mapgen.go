package game

import (
	"fmt"

	"github.com/Garsondee/Isle-Sim/internal/logger"
	"github.com/sirupsen/logrus"
)

// MapConfig holds everything the generator needs besides the seed.
type MapConfig struct {
	Width   int
	Height  int
	Noise   NoiseConfig
	Terrain TerrainConfig
}

var defaultMapConfig = MapConfig{
	Width:   50,
	Height:  50,
	Noise:   defaultNoiseConfig,
	Terrain: defaultTerrainConfig,
}

// GenerateMap builds the terrain, cost and (empty) build layers for a seed,
// then runs the edge pass. Cells are independent, so the output depends only
// on (seed, cfg), never on iteration order.
func GenerateMap(seed int64, cfg MapConfig, assets AssetIndex) (*Map, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", cfg.Width, cfg.Height, ErrInvalidDimensions)
	}
	dims := Dims{Width: cfg.Width, Height: cfg.Height}
	m := &Map{
		Dims:      dims,
		Seed:      seed,
		tiles:     make([]Tile, dims.Len()),
		edges:     make([]EdgeMask, dims.Len()),
		buildings: make([]*Building, dims.Len()),
		costs:     NewCostGrid(dims.Width, dims.Height, 1),
	}

	nf := NewNoiseField(seed, dims, cfg.Noise)
	for y := 0; y < dims.Height; y++ {
		for x := 0; x < dims.Width; x++ {
			cat, variant := cfg.Terrain.Classify(nf.Sample(x, y))
			ax, ay := CellAnchor(Pt(x, y))
			t := Tile{
				Category: cat,
				Variant:  variant,
				AssetID:  assets.AssetID(variantAssetName(cat, variant)),
				ScreenX:  ax,
				ScreenY:  ay,
				Cost:     cfg.Terrain.Cost(cat),
			}
			i := dims.Index(x, y)
			m.tiles[i] = t
			m.costs.cells[i] = t.Cost
		}
	}
	m.computeEdges()

	counts := m.CategoryCounts()
	logger.Log.WithFields(logrus.Fields{
		"seed":      seed,
		"size":      fmt.Sprintf("%dx%d", dims.Width, dims.Height),
		"noise":     cfg.Noise.Kind.String(),
		"deepwater": counts[CategoryDeepWater],
		"water":     counts[CategoryWater],
		"sand":      counts[CategorySand],
		"grass":     counts[CategoryGrass],
	}).Info("map generated")
	return m, nil
}

// NewFlatMap builds a map from an explicit cost layout instead of noise.
// Cells with an Impassable cost become water, everything else grass. It is
// used by tests and scripted scenarios that need a hand-built grid.
func NewFlatMap(width, height int, costs []Cost, assets AssetIndex) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}
	dims := Dims{Width: width, Height: height}
	if costs != nil && len(costs) != dims.Len() {
		return nil, fmt.Errorf("cost layout has %d cells, want %d: %w", len(costs), dims.Len(), ErrInvalidDimensions)
	}
	m := &Map{
		Dims:      dims,
		tiles:     make([]Tile, dims.Len()),
		edges:     make([]EdgeMask, dims.Len()),
		buildings: make([]*Building, dims.Len()),
		costs:     NewCostGrid(width, height, 1),
	}
	for i := range m.tiles {
		c := Cost(1)
		if costs != nil {
			c = costs[i]
		}
		cat := CategoryGrass
		if c == Impassable {
			cat = CategoryWater
		}
		ax, ay := CellAnchor(dims.PosOf(i))
		m.tiles[i] = Tile{
			Category: cat,
			AssetID:  assets.AssetID(variantAssetName(cat, 0)),
			ScreenX:  ax,
			ScreenY:  ay,
			Cost:     c,
		}
		m.costs.cells[i] = c
	}
	m.computeEdges()
	return m, nil
}
