package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestSim_Defaults(t *testing.T) {
	ts, err := NewTestSim()
	require.NoError(t, err)
	assert.Equal(t, 10, ts.World.Map().Width)
	assert.Equal(t, 10, ts.World.Map().Height)
	assert.Empty(t, ts.World.Actors())
	assert.Same(t, ts.SimLog, ts.World.Log())
}

func TestNewTestSim_BadLayout(t *testing.T) {
	_, err := NewTestSim(WithMapSize(2, 2), WithCosts([]Cost{1, 1, 1}))
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestNewTestSim_SetupErrorsCollected(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(4, 4),
		WithBuilding(1, 1, BuildingWall),
		WithBuilding(1, 1, BuildingRoad),
		WithActor(1, 1, 3, 3),
	)
	require.NoError(t, err)
	require.Len(t, ts.SetupErrors, 2)
	assert.ErrorIs(t, ts.SetupErrors[0], ErrOccupiedCell)
	assert.ErrorIs(t, ts.SetupErrors[1], ErrBlockedCell)
}

func TestTestSim_WanderOnGeneratedMap(t *testing.T) {
	ts, err := NewTestSim(
		WithGeneratedMap(),
		WithMapSize(40, 40),
		WithSeed(12),
		WithRandomActors(4, true),
	)
	require.NoError(t, err)
	require.Empty(t, ts.SetupErrors)
	require.Len(t, ts.World.Actors(), 4)

	ts.RunTicks(600)
	assert.Equal(t, 600, ts.CurrentTick())
	assert.Len(t, ts.Snapshot().Actors, 4)

	g := ts.World.Map().Costs()
	for _, a := range ts.World.Actors() {
		for _, wp := range a.Waypoints() {
			assert.True(t, g.Passable(wp), "A%d queued %s", a.ID(), wp)
		}
	}
	assert.Positive(t, ts.SimLog.CountCategory("move", "target"))
}

func TestTestSim_VerboseRecordsPositions(t *testing.T) {
	ts, err := NewTestSim(WithMapSize(8, 1), WithVerbose(true), WithActor(0, 0, 7, 0))
	require.NoError(t, err)
	ts.RunTicks(10)
	assert.Len(t, ts.SimLog.Filter("move", "pos"), 10)
	assert.True(t, strings.HasPrefix(ts.SimLog.Filter("move", "pos")[0].String(), "[T=001] A0"))
}

func TestSimLog_Summary(t *testing.T) {
	ts, err := NewTestSim(WithMapSize(6, 6), WithActor(0, 0, 5, 0), WithBuilding(3, 3, BuildingFarm))
	require.NoError(t, err)
	ts.RunUntil(AllIdle, 1000)

	s := ts.SimLog.Summary(ts.World)
	assert.Contains(t, s, "buildings=1")
	assert.Contains(t, s, "Actors: 1 (moving=0)")
	assert.Contains(t, s, "arrivals=1")
}

func TestBuildReport(t *testing.T) {
	ts, err := NewTestSim(
		WithMapSize(5, 5),
		WithBuilding(0, 4, BuildingWall),
		WithBuilding(1, 4, BuildingRoad),
		WithBuilding(2, 4, BuildingRoad),
		WithActor(0, 0, 4, 0),
	)
	require.NoError(t, err)
	ts.RunUntil(AllIdle, 1000)

	r := BuildReport(ts.World)
	assert.Equal(t, 25, r.Terrain[CategoryGrass])
	assert.InDelta(t, 96.0, r.PassablePct, 1e-9)
	assert.Equal(t, 2, r.Buildings[BuildingRoad])
	assert.Equal(t, 1, r.Buildings[BuildingWall])
	require.Len(t, r.Actors, 1)
	assert.Equal(t, 1, r.Actors[0].Arrivals)
	assert.Equal(t, Pt(4, 0), r.Actors[0].Tile)

	out := r.Format()
	assert.Contains(t, out, "buildings: wall=1 road=2")
	assert.Contains(t, out, "moves: targets=1 arrivals=1")
}
