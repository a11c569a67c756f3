package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T, seed int64, w, h int) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Map.Width, cfg.Map.Height = w, h
	world, err := NewWorld(cfg, NewNameIndex(AllAssetNames()...))
	require.NoError(t, err)
	return world
}

// requireCostInvariant checks every cell holds its building's cost when it
// has one and its terrain cost otherwise.
func requireCostInvariant(t *testing.T, w *World) {
	t.Helper()
	m := w.Map()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile, err := m.TileAt(x, y)
			require.NoError(t, err)
			b, err := m.BuildingAt(x, y)
			require.NoError(t, err)
			c, err := m.Costs().Get(x, y)
			require.NoError(t, err)
			if b != nil {
				require.Equal(t, b.Cost, c, "building %s at (%d,%d)", b.Kind, x, y)
				got, ok := w.Building(b.ID)
				require.True(t, ok)
				require.Same(t, b, got)
			} else {
				require.Equal(t, tile.Cost, c, "terrain at (%d,%d)", x, y)
			}
		}
	}
}

func TestNewWithSeed_Deterministic(t *testing.T) {
	a, err := NewWithSeed(77)
	require.NoError(t, err)
	b, err := NewWithSeed(77)
	require.NoError(t, err)
	assert.Equal(t, a.Map().Tiles(), b.Map().Tiles())
	assert.Equal(t, a.Map().Costs().Cells(), b.Map().Costs().Cells())
	assert.Equal(t, 50, a.Map().Width)
	assert.Equal(t, int64(77), a.Map().Seed)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotZero(t, cfg.Seed)
	assert.Equal(t, 50, cfg.Map.Width)
	assert.Equal(t, 50, cfg.Map.Height)
	assert.Equal(t, DefaultSimplifyInterval, cfg.SimplifyInterval)
	assert.Equal(t, NoiseOpenSimplex, cfg.Map.Noise.Kind)
}

func TestWorld_CostInvariantUnderPlaceAndClear(t *testing.T) {
	w := newTestWorld(t, 4, 20, 20)
	requireCostInvariant(t, w)

	rng := rand.New(rand.NewSource(9)) // #nosec G404 -- test
	kinds := BuildingKinds()
	for i := 0; i < 300; i++ {
		x, y := rng.Intn(20), rng.Intn(20)
		require.NoError(t, w.ToggleBuilding(x, y, kinds[rng.Intn(len(kinds))]))
		if i%25 == 0 {
			requireCostInvariant(t, w)
		}
	}
	requireCostInvariant(t, w)
}

func TestWorld_PlaceOnOccupiedCell(t *testing.T) {
	w := newTestWorld(t, 4, 10, 10)
	first, err := w.PlaceBuilding(5, 5, BuildingFarm)
	require.NoError(t, err)

	_, err = w.PlaceBuilding(5, 5, BuildingWall)
	assert.ErrorIs(t, err, ErrOccupiedCell)
	assert.Equal(t, 1, w.BuildingCount())
	c, _ := w.Map().Costs().Get(5, 5)
	assert.Equal(t, first.Cost, c, "rejected placement leaves the cost alone")
}

func TestWorld_ClearEmptyAndOutOfBounds(t *testing.T) {
	w := newTestWorld(t, 4, 10, 10)
	_, err := w.ClearBuilding(3, 3)
	assert.ErrorIs(t, err, ErrEmptyCell)
	_, err = w.PlaceBuilding(10, 0, BuildingRoad)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = w.ClearBuilding(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = w.PlaceBuilding(1, 1, BuildingKind(99))
	assert.ErrorIs(t, err, ErrUnknownBuilding)
	assert.Zero(t, w.BuildingCount())
}

func TestWorld_BuildingToggleReroutes(t *testing.T) {
	// Column 2 is walled except for a gap at (2,2) and a far detour at (2,7).
	ts, err := NewTestSim(
		WithMapSize(5, 8),
		WithWall(2, 0, 2, 1),
		WithWall(2, 3, 2, 6),
	)
	require.NoError(t, err)
	require.Empty(t, ts.SetupErrors)
	w := ts.World

	r, err := w.FindPath(Pt(0, 2), Pt(4, 2))
	require.NoError(t, err)
	assert.Contains(t, r, Pt(2, 2))
	assert.Equal(t, uint64(4), r.Cost(w.Map().Costs()))

	_, err = w.PlaceBuilding(2, 2, BuildingWall)
	require.NoError(t, err)
	r, err = w.FindPath(Pt(0, 2), Pt(4, 2))
	require.NoError(t, err)
	assert.NotContains(t, r, Pt(2, 2))
	assert.Contains(t, r, Pt(2, 7))

	_, err = w.ClearBuilding(2, 2)
	require.NoError(t, err)
	c, _ := w.Map().Costs().Get(2, 2)
	assert.Equal(t, Cost(1), c)
	r, err = w.FindPath(Pt(0, 2), Pt(4, 2))
	require.NoError(t, err)
	assert.Contains(t, r, Pt(2, 2))
	assert.Equal(t, uint64(4), r.Cost(w.Map().Costs()))
}

func TestWorld_WallNotPlacedUnderActor(t *testing.T) {
	ts, err := NewTestSim(WithMapSize(4, 4), WithActor(1, 1, 1, 1))
	require.NoError(t, err)
	w := ts.World

	_, err = w.PlaceBuilding(1, 1, BuildingWall)
	assert.ErrorIs(t, err, ErrOccupiedCell)
	_, err = w.PlaceBuilding(1, 1, BuildingRoad)
	assert.NoError(t, err, "crossable buildings may go under an actor")
}

func TestWorld_SpawnAndTargetErrors(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(3, 1),
		WithCosts([]Cost{1, Impassable, 1}),
	)
	require.NoError(t, err)
	w := ts.World

	_, err = w.SpawnActor(1, 0)
	assert.ErrorIs(t, err, ErrBlockedCell)
	_, err = w.SpawnActor(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	id, err := w.SpawnActor(0, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, w.SetActorTarget(id, 2, 0), ErrNoPath)
	assert.ErrorIs(t, w.SetActorTarget(id, 0, 0), ErrDegenerateTarget)
	assert.ErrorIs(t, w.SetActorTarget(id+1, 2, 0), ErrUnknownActor)
	assert.ErrorIs(t, w.ClearActorTarget(id+1), ErrUnknownActor)
}

func TestWorld_BlockingWallReplansMovingActor(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(7, 3),
		WithSimplifyInterval(0),
		WithActor(0, 1, 6, 1),
	)
	require.NoError(t, err)
	w := ts.World
	a, ok := w.Actor(0)
	require.True(t, ok)
	require.Equal(t, []Pos{{6, 1}}, a.Waypoints())

	ts.RunTicks(5)
	_, err = w.PlaceBuilding(4, 1, BuildingWall)
	require.NoError(t, err)
	assert.True(t, a.Moving())
	assert.True(t, a.routeClear(w.Map().Costs()))
	assert.Equal(t, 2, ts.SimLog.CountCategory("move", "target"))

	tick := ts.RunUntil(AllIdle, 1000)
	require.NotEqual(t, -1, tick, ts.SimLog.Format())
	assert.Equal(t, Pt(6, 1), a.Tile())
}

func TestWorld_SealedWallHaltsActor(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(5, 3),
		WithSimplifyInterval(0),
		WithActor(0, 1, 4, 1),
	)
	require.NoError(t, err)
	w := ts.World
	ts.RunTicks(3)

	for y := 0; y < 3; y++ {
		_, err := w.PlaceBuilding(2, y, BuildingWall)
		require.NoError(t, err)
	}
	a, _ := w.Actor(0)
	assert.True(t, ts.SimLog.HasEntry("move", "halted", "no path"))
	assert.Equal(t, []Pos{{0, 1}}, a.Waypoints(), "settles back onto its own tile")

	require.NotEqual(t, -1, ts.RunUntil(AllIdle, 100))
	x, y := a.Position()
	cx, cy := CellToWorld(Pt(0, 1))
	assert.Equal(t, cx, x)
	assert.Equal(t, cy, y)
}

// waterColumn is a w x h layout with impassable water in column col.
func waterColumn(w, h, col int) []Cost {
	costs := make([]Cost, w*h)
	for i := range costs {
		costs[i] = 1
		if i%w == col {
			costs[i] = Impassable
		}
	}
	return costs
}

func TestWorld_ClearingRoadOverWaterReplansActors(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(5, 3),
		WithCosts(waterColumn(5, 3, 2)),
		WithSimplifyInterval(0),
		WithBuilding(2, 1, BuildingRoad),
		WithActor(0, 1, 4, 1),
	)
	require.NoError(t, err)
	require.Empty(t, ts.SetupErrors)
	w := ts.World
	a, _ := w.Actor(0)
	require.Equal(t, []Pos{{4, 1}}, a.Waypoints(), "the road bridges the water")

	// 3 ticks at 48px/s puts the actor 2.4px past its tile centre.
	ts.RunTicks(3)
	_, err = w.ClearBuilding(2, 1)
	require.NoError(t, err)
	requireCostInvariant(t, w)
	assert.True(t, ts.SimLog.HasEntry("move", "halted", "no path"))
	assert.Equal(t, []Pos{{0, 1}}, a.Waypoints())

	g := w.Map().Costs()
	tick := ts.RunUntil(func(ts *TestSim) bool {
		require.True(t, g.Passable(a.Tile()), "actor on %s at tick %d", a.Tile(), ts.CurrentTick())
		return AllIdle(ts)
	}, 200)
	require.NotEqual(t, -1, tick)
	assert.Equal(t, Pt(0, 1), a.Tile())
}

func TestWorld_ClearingRoadOverWaterReroutesThroughOtherCrossing(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(5, 3),
		WithCosts(waterColumn(5, 3, 2)),
		WithSimplifyInterval(0),
		WithBuilding(2, 1, BuildingRoad),
		WithBuilding(2, 2, BuildingRoad),
		WithActor(0, 1, 4, 1),
	)
	require.NoError(t, err)
	require.Empty(t, ts.SetupErrors)
	w := ts.World
	a, _ := w.Actor(0)

	ts.RunTicks(2)
	_, err = w.ClearBuilding(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, ts.SimLog.CountCategory("move", "target"))
	assert.True(t, a.routeClear(w.Map().Costs()), "new route crosses at (2,2)")
	assert.False(t, ts.SimLog.HasEntry("move", "halted", ""))

	require.NotEqual(t, -1, ts.RunUntil(AllIdle, 1000))
	assert.Equal(t, Pt(4, 1), a.Tile())
}

func TestWorld_RoadOverWaterNotClearedUnderActor(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(5, 3),
		WithCosts(waterColumn(5, 3, 2)),
		WithBuilding(2, 1, BuildingRoad),
		WithBuilding(0, 0, BuildingRoad),
		WithActor(2, 1, 2, 1),
		WithActor(0, 0, 0, 0),
	)
	require.NoError(t, err)
	require.Empty(t, ts.SetupErrors)
	w := ts.World

	_, err = w.ClearBuilding(2, 1)
	assert.ErrorIs(t, err, ErrOccupiedCell)
	b, err := w.Map().BuildingAt(2, 1)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, w.Map().Costs().Passable(Pt(2, 1)))

	// Over grass the cell stays passable, so the clear goes through.
	_, err = w.ClearBuilding(0, 0)
	assert.NoError(t, err)
	requireCostInvariant(t, w)
}

func TestWorld_RedirectUsesOccupiedTile(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(10, 3),
		WithSimplifyInterval(0),
		WithActor(0, 1, 9, 1),
	)
	require.NoError(t, err)
	w := ts.World
	a, _ := w.Actor(0)

	tick := ts.RunUntil(func(ts *TestSim) bool { return a.Tile().X == 4 }, 1000)
	require.NotEqual(t, -1, tick)
	require.Equal(t, []Pos{{9, 1}}, a.Waypoints(), "still heading for the old goal")

	// A route from the queued head (9,1) would pass through column 5+; the
	// new route starts from the tile the actor is standing on.
	require.NoError(t, w.SetActorTarget(0, 4, 2))
	assert.Equal(t, []Pos{{4, 2}}, a.Waypoints())

	require.NotEqual(t, -1, ts.RunUntil(AllIdle, 1000))
	assert.Equal(t, Pt(4, 2), a.Tile())
}

func TestWorld_UpdateLogsArrival(t *testing.T) {
	ts, err := NewTestSim(WithMapSize(6, 6), WithActor(0, 0, 5, 5), WithActor(5, 0, 0, 5))
	require.NoError(t, err)
	require.Empty(t, ts.SetupErrors)

	require.NotEqual(t, -1, ts.RunUntil(AllIdle, 2000))
	assert.Equal(t, 2, ts.SimLog.CountCategory("move", "arrived"))
	last, ok := ts.SimLog.LastOf("move", "arrived")
	require.True(t, ok)
	assert.Equal(t, ts.World.Tick(), last.Tick)
	assert.Len(t, ts.SimLog.FilterActor("A1"), 3, "spawn, target, arrived")
}
