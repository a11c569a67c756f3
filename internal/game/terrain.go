package game

import "fmt"

// Category identifies the base terrain of a tile.
type Category uint8

const (
	CategoryDeepWater Category = iota // open sea, impassable
	CategoryWater                     // shallows, impassable
	CategorySand                      // beach / dirt, slow
	CategoryGrass                     // default land
	categoryCount                     // sentinel
)

func (c Category) String() string {
	switch c {
	case CategoryDeepWater:
		return "deepwater"
	case CategoryWater:
		return "water"
	case CategorySand:
		return "sand"
	case CategoryGrass:
		return "grass"
	default:
		return "unknown"
	}
}

// Passable reports whether actors can enter tiles of this category at all.
func (c Category) Passable() bool {
	switch c {
	case CategoryDeepWater, CategoryWater:
		return false
	default:
		return true
	}
}

// TerrainConfig holds the classification thresholds. Elevation buckets must
// be strictly increasing; GrassBands split moisture into len+1 grass variants.
type TerrainConfig struct {
	DeepWaterMax float64 // elevation below this -> deep water
	WaterMax     float64 // below this -> water
	SandMax      float64 // below this -> sand, otherwise grass

	// Moisture split for the two-variant categories.
	WetThreshold float64

	GrassBands [5]float64

	SandCost Cost
}

var defaultTerrainConfig = TerrainConfig{
	DeepWaterMax: 0.03,
	WaterMax:     0.08,
	SandMax:      0.2,
	WetThreshold: 0.5,
	GrassBands:   [5]float64{0.2, 0.35, 0.55, 0.75, 0.9},
	SandCost:     2,
}

// Classify maps a noise sample to a category and a visual variant. Variants
// never affect cost.
func (tc TerrainConfig) Classify(s Sample) (Category, uint8) {
	var cat Category
	switch {
	case s.Elevation < tc.DeepWaterMax:
		cat = CategoryDeepWater
	case s.Elevation < tc.WaterMax:
		cat = CategoryWater
	case s.Elevation < tc.SandMax:
		cat = CategorySand
	default:
		cat = CategoryGrass
	}

	if cat == CategoryGrass {
		v := uint8(0)
		for _, b := range tc.GrassBands {
			if s.Moisture >= b {
				v++
			}
		}
		return cat, v
	}
	if s.Moisture >= tc.WetThreshold {
		return cat, 1
	}
	return cat, 0
}

// Cost returns the movement cost for entering a tile of category c.
func (tc TerrainConfig) Cost(c Category) Cost {
	switch c {
	case CategoryDeepWater, CategoryWater:
		return Impassable
	case CategorySand:
		return tc.SandCost
	default:
		return 1
	}
}

// variantAssetName returns the renderable asset name of a category variant.
func variantAssetName(c Category, v uint8) string {
	switch c {
	case CategoryDeepWater:
		return fmt.Sprintf("deepwater%d", v)
	case CategoryWater:
		return fmt.Sprintf("water%d", v)
	case CategorySand:
		if v == 0 {
			return "drysand"
		}
		return "dirt"
	default:
		return fmt.Sprintf("grass%d", v)
	}
}

// TerrainAssetNames lists every terrain asset name the generator can request.
func TerrainAssetNames() []string {
	names := []string{"deepwater0", "deepwater1", "water0", "water1", "drysand", "dirt"}
	for v := 0; v <= len(defaultTerrainConfig.GrassBands); v++ {
		names = append(names, fmt.Sprintf("grass%d", v))
	}
	return names
}
