package game

import (
	"fmt"
	"time"

	"github.com/Garsondee/Isle-Sim/internal/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config holds all world construction parameters.
type Config struct {
	Seed             int64
	Map              MapConfig
	SimplifyInterval int     // forced waypoint every N raw steps; <= 0 disables
	ActorSpeed       float64 // pixels per second
}

// DefaultConfig returns the default configuration seeded from the clock.
func DefaultConfig() Config {
	return Config{
		Seed:             time.Now().UnixNano(),
		Map:              defaultMapConfig,
		SimplifyInterval: DefaultSimplifyInterval,
		ActorSpeed:       DefaultActorSpeed,
	}
}

// AllAssetNames lists every asset name the world can hand to a renderer.
func AllAssetNames() []string {
	return append(TerrainAssetNames(), BuildingAssetNames()...)
}

// World owns the map, the buildings and the actors. It is driven by a single
// goroutine and is not safe for concurrent use.
type World struct {
	cfg    Config
	assets AssetIndex
	m      *Map

	buildings map[uuid.UUID]*Building
	actors    []*Actor
	byID      map[ActorID]*Actor
	nextActor ActorID

	tick int
	log  *SimLog
}

// NewWithSeed builds a world from the default configuration and an explicit
// seed. The same seed always yields the same map.
func NewWithSeed(seed int64) (*World, error) {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return NewWorld(cfg, NewNameIndex(AllAssetNames()...))
}

// NewWorld generates the map for cfg and returns an empty world on it.
func NewWorld(cfg Config, assets AssetIndex) (*World, error) {
	m, err := GenerateMap(cfg.Seed, cfg.Map, assets)
	if err != nil {
		return nil, fmt.Errorf("generate map: %w", err)
	}
	return newWorldOnMap(cfg, m, assets), nil
}

func newWorldOnMap(cfg Config, m *Map, assets AssetIndex) *World {
	return &World{
		cfg:       cfg,
		assets:    assets,
		m:         m,
		buildings: make(map[uuid.UUID]*Building),
		byID:      make(map[ActorID]*Actor),
		log:       NewSimLog(false),
	}
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Map returns the world's grid layers.
func (w *World) Map() *Map { return w.m }

// Tick returns the number of Update calls so far.
func (w *World) Tick() int { return w.tick }

// Log returns the structured event log.
func (w *World) Log() *SimLog { return w.log }

// SetLog replaces the event log (tests use a verbose one).
func (w *World) SetLog(sl *SimLog) { w.log = sl }

// --- Buildings ---

// PlaceBuilding puts an unrotated building of kind k on (x, y).
func (w *World) PlaceBuilding(x, y int, k BuildingKind) (*Building, error) {
	return w.PlaceBuildingRotated(x, y, k, Rotate0)
}

// PlaceBuildingRotated puts a building on (x, y). The cost cell, the build
// layer and the registry change together or not at all. Impassable buildings
// may not be placed under an actor.
func (w *World) PlaceBuildingRotated(x, y int, k BuildingKind, rot Rotation) (*Building, error) {
	if !k.valid() {
		return nil, fmt.Errorf("kind %d: %w", k, ErrUnknownBuilding)
	}
	p := Pt(x, y)
	if !buildingCrossable(k) {
		for _, a := range w.actors {
			if a.Tile() == p {
				return nil, fmt.Errorf("%s on %s under actor %d: %w", k, p, a.id, ErrOccupiedCell)
			}
		}
	}
	b := newBuilding(k, p, rot, w.assets)
	if err := w.m.setBuilding(b); err != nil {
		return nil, err
	}
	w.buildings[b.ID] = b

	logger.Log.WithFields(logrus.Fields{
		"kind": k.String(),
		"pos":  p.String(),
		"cost": b.Cost,
		"id":   b.ID.String(),
	}).Debug("building placed")
	w.log.Add(w.tick, "--", "build", "place", fmt.Sprintf("%s at %s", k, p), float64(b.Cost))

	if !b.Crossable {
		w.replanBlocked()
	}
	return b, nil
}

// ClearBuilding removes the building on (x, y) and restores the terrain cost.
// A building over impassable terrain may not be cleared from under an actor,
// and clearing it re-plans the actors whose routes crossed it.
func (w *World) ClearBuilding(x, y int) (*Building, error) {
	tile, err := w.m.TileAt(x, y)
	if err != nil {
		return nil, err
	}
	p := Pt(x, y)
	sinks := tile.Cost == Impassable
	if sinks {
		for _, a := range w.actors {
			if a.Tile() == p {
				return nil, fmt.Errorf("clear %s under actor %d: %w", p, a.id, ErrOccupiedCell)
			}
		}
	}
	b, err := w.m.removeBuilding(x, y)
	if err != nil {
		return nil, err
	}
	delete(w.buildings, b.ID)

	logger.Log.WithFields(logrus.Fields{
		"kind": b.Kind.String(),
		"pos":  b.Pos.String(),
		"id":   b.ID.String(),
	}).Debug("building cleared")
	w.log.Add(w.tick, "--", "build", "clear", fmt.Sprintf("%s at %s", b.Kind, b.Pos), 0)

	if sinks {
		w.replanBlocked()
	}
	return b, nil
}

// ToggleBuilding clears (x, y) if it holds a building, otherwise places kind k.
func (w *World) ToggleBuilding(x, y int, k BuildingKind) error {
	b, err := w.m.BuildingAt(x, y)
	if err != nil {
		return err
	}
	if b != nil {
		_, err = w.ClearBuilding(x, y)
		return err
	}
	_, err = w.PlaceBuilding(x, y, k)
	return err
}

// Building looks a building up by id.
func (w *World) Building(id uuid.UUID) (*Building, bool) {
	b, ok := w.buildings[id]
	return b, ok
}

// BuildingCount returns the number of placed buildings.
func (w *World) BuildingCount() int { return len(w.buildings) }

// replanBlocked re-routes moving actors whose remaining waypoint chain lost
// line of sight. Actors with no route left stop where they are.
func (w *World) replanBlocked() {
	g := w.m.Costs()
	for _, a := range w.actors {
		if !a.Moving() || a.routeClear(g) {
			continue
		}
		goal := a.waypoints[len(a.waypoints)-1]
		if err := w.retarget(a, goal); err != nil {
			a.ClearTarget()
			w.log.Add(w.tick, a.label(), "move", "halted", err.Error(), 0)
		}
	}
}

// --- Actors ---

// SpawnActor adds an idle actor at the centre of (x, y).
func (w *World) SpawnActor(x, y int) (ActorID, error) {
	p := Pt(x, y)
	if err := w.m.check(x, y); err != nil {
		return 0, err
	}
	if !w.m.Costs().Passable(p) {
		return 0, fmt.Errorf("spawn at %s: %w", p, ErrBlockedCell)
	}
	id := w.nextActor
	w.nextActor++
	a := NewActor(id, p, w.cfg.ActorSpeed)
	w.actors = append(w.actors, a)
	w.byID[id] = a
	w.log.Add(w.tick, a.label(), "actor", "spawn", p.String(), 0)
	return id, nil
}

// Actor looks an actor up by id.
func (w *World) Actor(id ActorID) (*Actor, bool) {
	a, ok := w.byID[id]
	return a, ok
}

// Actors returns every actor in spawn order.
func (w *World) Actors() []*Actor { return w.actors }

// SetActorTarget routes actor id to (x, y) from the tile it currently
// occupies. An actor that is already moving drops its old queue.
func (w *World) SetActorTarget(id ActorID, x, y int) error {
	a, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("actor %d: %w", id, ErrUnknownActor)
	}
	return w.retarget(a, Pt(x, y))
}

func (w *World) retarget(a *Actor, target Pos) error {
	if err := a.SetTarget(w.m.Costs(), target, w.cfg.SimplifyInterval); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"actor":  a.id,
			"from":   a.Tile().String(),
			"target": target.String(),
		}).WithError(err).Debug("target rejected")
		return err
	}
	w.log.Add(w.tick, a.label(), "move", "target",
		fmt.Sprintf("%s -> %s", a.Tile(), target), float64(len(a.waypoints)))
	return nil
}

// ClearActorTarget stops actor id on the tile it occupies.
func (w *World) ClearActorTarget(id ActorID) error {
	a, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("actor %d: %w", id, ErrUnknownActor)
	}
	a.ClearTarget()
	w.log.Add(w.tick, a.label(), "move", "clear", a.Tile().String(), 0)
	return nil
}

// Update advances every actor by dt seconds.
func (w *World) Update(dt float64) {
	w.tick++
	for _, a := range w.actors {
		if !a.Moving() {
			continue
		}
		if a.Tick(dt) {
			logger.Log.WithFields(logrus.Fields{
				"actor": a.id,
				"tile":  a.Tile().String(),
				"tick":  w.tick,
			}).Debug("actor arrived")
			w.log.Add(w.tick, a.label(), "move", "arrived", a.Tile().String(), 0)
			continue
		}
		w.log.AddVerbose(w.tick, a.label(), "move", "pos",
			fmt.Sprintf("%.1f,%.1f", a.x, a.y), float64(len(a.waypoints)))
	}
}

// FindPath is a convenience wrapper over the cost grid's search.
func (w *World) FindPath(from, to Pos) (Route, error) {
	return w.m.Costs().FindPath(from, to)
}

// PassableTiles lists every passable cell in row-major order.
func (w *World) PassableTiles() []Pos {
	g := w.m.Costs()
	var out []Pos
	for i, c := range g.Cells() {
		if c != Impassable {
			out = append(out, g.PosOf(i))
		}
	}
	return out
}
