package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapConfig(w, h int) MapConfig {
	cfg := defaultMapConfig
	cfg.Width, cfg.Height = w, h
	return cfg
}

func TestGenerateMap_Deterministic(t *testing.T) {
	for _, kind := range []NoiseKind{NoiseOpenSimplex, NoisePerlin} {
		cfg := testMapConfig(40, 30)
		cfg.Noise.Kind = kind
		a, err := GenerateMap(99, cfg, NewNameIndex(AllAssetNames()...))
		require.NoError(t, err)
		b, err := GenerateMap(99, cfg, NewNameIndex(AllAssetNames()...))
		require.NoError(t, err)

		assert.Equal(t, a.Tiles(), b.Tiles(), kind.String())
		assert.Equal(t, a.Costs().Cells(), b.Costs().Cells(), kind.String())
		assert.Equal(t, a.edges, b.edges, kind.String())
		assert.Equal(t, a.buildings, b.buildings, kind.String())
	}
}

func TestGenerateMap_SeedChangesTerrain(t *testing.T) {
	cfg := testMapConfig(50, 50)
	a, err := GenerateMap(1, cfg, NewNameIndex())
	require.NoError(t, err)
	b, err := GenerateMap(2, cfg, NewNameIndex())
	require.NoError(t, err)
	assert.NotEqual(t, a.Tiles(), b.Tiles())
}

func TestGenerateMap_InvalidDimensions(t *testing.T) {
	_, err := GenerateMap(1, testMapConfig(0, 10), NewNameIndex())
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = GenerateMap(1, testMapConfig(10, -3), NewNameIndex())
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestGenerateMap_LayersAgree(t *testing.T) {
	assets := NewNameIndex(AllAssetNames()...)
	m, err := GenerateMap(5, testMapConfig(32, 32), assets)
	require.NoError(t, err)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile, err := m.TileAt(x, y)
			require.NoError(t, err)
			c, err := m.Costs().Get(x, y)
			require.NoError(t, err)
			require.Equal(t, tile.Cost, c, "(%d,%d)", x, y)
			require.Equal(t, defaultTerrainConfig.Cost(tile.Category), tile.Cost)
			require.Equal(t, variantAssetName(tile.Category, tile.Variant), assets.Name(tile.AssetID))
			require.Equal(t, float64(x*TileSize), tile.ScreenX)
			require.Equal(t, float64(y*TileSize), tile.ScreenY)

			b, err := m.BuildingAt(x, y)
			require.NoError(t, err)
			require.Nil(t, b)
		}
	}
}

func TestGenerateMap_BorderIsDeepWater(t *testing.T) {
	m, err := GenerateMap(8, testMapConfig(24, 24), NewNameIndex())
	require.NoError(t, err)
	for i := 0; i < 24; i++ {
		top, _ := m.TileAt(i, 0)
		left, _ := m.TileAt(0, i)
		assert.Equal(t, CategoryDeepWater, top.Category)
		assert.Equal(t, CategoryDeepWater, left.Category)
	}
}

func TestGenerateMap_EdgesMarkCategoryChanges(t *testing.T) {
	m, err := GenerateMap(21, testMapConfig(30, 30), NewNameIndex())
	require.NoError(t, err)

	sides := []struct {
		dx, dy int
		bit    EdgeMask
	}{
		{0, -1, EdgeNorth}, {1, 0, EdgeEast}, {0, 1, EdgeSouth}, {-1, 0, EdgeWest},
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			here, _ := m.TileAt(x, y)
			e := m.Edges(x, y)
			for _, s := range sides {
				nb, err := m.TileAt(x+s.dx, y+s.dy)
				if err != nil {
					require.False(t, e.Has(s.bit), "(%d,%d) has edge towards the outside", x, y)
					continue
				}
				require.Equal(t, nb.Category != here.Category, e.Has(s.bit), "(%d,%d) side %d", x, y, s.bit)
			}
		}
	}
	assert.Zero(t, m.Edges(-1, 0))
}

func TestNewFlatMap(t *testing.T) {
	costs := []Cost{
		1, Impassable,
		3, 1,
	}
	m, err := NewFlatMap(2, 2, costs, NewNameIndex())
	require.NoError(t, err)
	assert.Equal(t, costs, m.Costs().Cells())

	wet, _ := m.TileAt(1, 0)
	assert.Equal(t, CategoryWater, wet.Category)
	assert.True(t, m.Edges(0, 0).Has(EdgeEast))

	_, err = NewFlatMap(3, 3, costs, NewNameIndex())
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}
