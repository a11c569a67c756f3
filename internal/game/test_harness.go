package game

import (
	"fmt"
	"math/rand"
)

// TicksPerSecond is the fixed update rate of the viewer and the harness.
const TicksPerSecond = 60

// TestSim is a headless simulation harness used by tests and the headless
// report. It drives a World at a fixed tick rate with no Ebiten dependency
// and supports deterministic seeding and structured logging.
type TestSim struct {
	World  *World
	SimLog *SimLog

	cfg       Config
	costs     []Cost // explicit layout; nil means generate from noise
	generated bool
	rng       *rand.Rand
	wander    bool

	// Rejected setup steps, e.g. a building placed on an occupied cell.
	SetupErrors []error

	tick int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra    simOptionKind = iota // map size, seed, costs, verbose; applied first
	simOptBuilding                      // buildings; applied after the map exists
	simOptActor                         // actors; applied after buildings
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithMapSize sets the grid dimensions in tiles.
func WithMapSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Map.Width = w
		ts.cfg.Map.Height = h
	}}
}

// WithSeed sets the map seed and the harness RNG seed.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Seed = seed
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithGeneratedMap builds the map from noise instead of a flat grass grid.
func WithGeneratedMap() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.generated = true
	}}
}

// WithNoise selects the noise backend for a generated map.
func WithNoise(k NoiseKind) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Map.Noise.Kind = k
	}}
}

// WithCosts uses an explicit row-major cost layout. Its length must match
// the map size.
func WithCosts(costs []Cost) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.costs = costs
	}}
}

// WithSimplifyInterval sets the forced waypoint interval.
func WithSimplifyInterval(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.SimplifyInterval = n
	}}
}

// WithActorSpeed sets the actor speed in pixels per second.
func WithActorSpeed(s float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.ActorSpeed = s
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithBuilding places a building on (x, y).
func WithBuilding(x, y int, k BuildingKind) SimOption {
	return SimOption{simOptBuilding, func(ts *TestSim) {
		if _, err := ts.World.PlaceBuilding(x, y, k); err != nil {
			ts.SetupErrors = append(ts.SetupErrors, err)
		}
	}}
}

// WithWall places walls on every cell from (x0, y0) to (x1, y1) inclusive.
func WithWall(x0, y0, x1, y1 int) SimOption {
	return SimOption{simOptBuilding, func(ts *TestSim) {
		for y := min(y0, y1); y <= max(y0, y1); y++ {
			for x := min(x0, x1); x <= max(x0, x1); x++ {
				if _, err := ts.World.PlaceBuilding(x, y, BuildingWall); err != nil {
					ts.SetupErrors = append(ts.SetupErrors, err)
				}
			}
		}
	}}
}

// WithActor spawns an actor on (sx, sy) and sends it to (tx, ty) unless the
// two coincide.
func WithActor(sx, sy, tx, ty int) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		id, err := ts.World.SpawnActor(sx, sy)
		if err != nil {
			ts.SetupErrors = append(ts.SetupErrors, err)
			return
		}
		if sx == tx && sy == ty {
			return
		}
		if err := ts.World.SetActorTarget(id, tx, ty); err != nil {
			ts.SetupErrors = append(ts.SetupErrors, err)
		}
	}}
}

// WithRandomActors spawns n actors on random passable tiles. With wander set,
// idle actors are given a new random destination every tick.
func WithRandomActors(n int, wander bool) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.wander = wander
		tiles := ts.World.PassableTiles()
		if len(tiles) == 0 {
			ts.SetupErrors = append(ts.SetupErrors, fmt.Errorf("no passable tile for %d actors: %w", n, ErrBlockedCell))
			return
		}
		for i := 0; i < n; i++ {
			p := tiles[ts.rng.Intn(len(tiles))]
			if _, err := ts.World.SpawnActor(p.X, p.Y); err != nil {
				ts.SetupErrors = append(ts.SetupErrors, err)
			}
		}
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (map size, seed, cost layout, verbose)
//  2. Build the map and the world
//  3. Buildings
//  4. Actors
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Map.Width, cfg.Map.Height = 10, 10
	ts := &TestSim{
		cfg:    cfg,
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if err := ts.buildWorld(); err != nil {
		return nil, err
	}
	for _, o := range opts {
		if o.kind == simOptBuilding {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	return ts, nil
}

func (ts *TestSim) buildWorld() error {
	assets := NewNameIndex(AllAssetNames()...)
	var (
		m   *Map
		err error
	)
	if ts.generated {
		m, err = GenerateMap(ts.cfg.Seed, ts.cfg.Map, assets)
	} else {
		m, err = NewFlatMap(ts.cfg.Map.Width, ts.cfg.Map.Height, ts.costs, assets)
	}
	if err != nil {
		return err
	}
	ts.World = newWorldOnMap(ts.cfg, m, assets)
	ts.World.SetLog(ts.SimLog)
	return nil
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

func (ts *TestSim) runOneTick() {
	ts.tick++
	if ts.wander {
		ts.assignWanderTargets()
	}
	ts.World.Update(1.0 / TicksPerSecond)
}

// assignWanderTargets sends every idle actor to a random passable tile.
// Unreachable picks are logged and retried next tick.
func (ts *TestSim) assignWanderTargets() {
	tiles := ts.World.PassableTiles()
	if len(tiles) < 2 {
		return
	}
	for _, a := range ts.World.Actors() {
		if a.Moving() {
			continue
		}
		p := tiles[ts.rng.Intn(len(tiles))]
		if err := ts.World.SetActorTarget(a.ID(), p.X, p.Y); err != nil {
			ts.SimLog.Add(ts.World.Tick(), a.label(), "move", "rejected", err.Error(), 0)
		}
	}
}

// AllIdle reports whether no actor is moving.
func AllIdle(ts *TestSim) bool {
	for _, a := range ts.World.Actors() {
		if a.Moving() {
			return false
		}
	}
	return true
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick   int
	Actors []ActorSnapshot
}

// ActorSnapshot is a lightweight copy of an actor's state at a tick.
type ActorSnapshot struct {
	ID        ActorID
	Label     string
	X, Y      float64
	Tile      Pos
	State     ActorState
	Waypoints int
}

// Snapshot returns the current state of all actors.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.tick}
	for _, a := range ts.World.Actors() {
		snap.Actors = append(snap.Actors, ActorSnapshot{
			ID:        a.id,
			Label:     a.label(),
			X:         a.x,
			Y:         a.y,
			Tile:      a.Tile(),
			State:     a.state,
			Waypoints: len(a.waypoints),
		})
	}
	return snap
}
