package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BuildingKind identifies a player-placed structure. The set is closed; all
// per-kind properties come from the switch tables below.
type BuildingKind uint8

const (
	BuildingWall BuildingKind = iota // Stone wall, blocks movement
	BuildingGate                     // Gate in a wall line, slow to pass
	BuildingRoad                     // Paved road, cheapest ground
	BuildingFarm                     // Tilled field, trampling is slow
	buildingKindCount                // sentinel
)

// BuildingKinds lists every kind in declaration order.
func BuildingKinds() []BuildingKind {
	kinds := make([]BuildingKind, 0, buildingKindCount)
	for k := BuildingKind(0); k < buildingKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k BuildingKind) String() string {
	switch k {
	case BuildingWall:
		return "wall"
	case BuildingGate:
		return "gate"
	case BuildingRoad:
		return "road"
	case BuildingFarm:
		return "farm"
	default:
		return "unknown"
	}
}

// ParseBuildingKind is the inverse of String.
func ParseBuildingKind(s string) (BuildingKind, error) {
	for _, k := range BuildingKinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownBuilding)
}

func (k BuildingKind) valid() bool { return k < buildingKindCount }

// buildingCost returns the movement cost of a cell holding the building.
func buildingCost(k BuildingKind) Cost {
	switch k {
	case BuildingWall:
		return Impassable
	case BuildingGate:
		return 3
	case BuildingRoad:
		return 1
	case BuildingFarm:
		return 4
	default:
		return Impassable
	}
}

// buildingCrossable mirrors buildingCost for callers that only need a bool.
func buildingCrossable(k BuildingKind) bool {
	return buildingCost(k) != Impassable
}

// buildingRotates reports whether the kind has a facing (walls and gates
// are drawn along or across a line).
func buildingRotates(k BuildingKind) bool {
	switch k {
	case BuildingWall, BuildingGate:
		return true
	default:
		return false
	}
}

// Rotation is a building's facing in quarter turns.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Degrees returns the rotation in degrees.
func (r Rotation) Degrees() int { return int(r%4) * 90 }

// Building is a placed structure occupying one cell.
type Building struct {
	ID        uuid.UUID
	Kind      BuildingKind
	Pos       Pos
	Cost      Cost
	Crossable bool
	Rotation  Rotation
	AssetID   uint32
}

// newBuilding fills the kind-specific fields from the property tables.
func newBuilding(k BuildingKind, p Pos, rot Rotation, assets AssetIndex) *Building {
	if !buildingRotates(k) {
		rot = Rotate0
	}
	return &Building{
		ID:        uuid.New(),
		Kind:      k,
		Pos:       p,
		Cost:      buildingCost(k),
		Crossable: buildingCrossable(k),
		Rotation:  rot % 4,
		AssetID:   assets.AssetID(k.String()),
	}
}

// BuildingAssetNames lists the asset names used by building kinds.
func BuildingAssetNames() []string {
	names := make([]string, 0, buildingKindCount)
	for _, k := range BuildingKinds() {
		names = append(names, k.String())
	}
	return names
}
