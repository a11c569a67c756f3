package game

import (
	"fmt"
	"math"
)

const (
	// DefaultActorSpeed is the walking speed in world pixels per second.
	DefaultActorSpeed = 48.0
	// ArriveTolerance is the per-axis distance in pixels at which a waypoint
	// counts as reached.
	ArriveTolerance = 2.0
)

// ActorID identifies an actor within one World.
type ActorID int

// ActorState is the actor's motion state.
type ActorState int

const (
	ActorIdle   ActorState = iota // no waypoints queued
	ActorMoving                   // following the waypoint queue
)

func (s ActorState) String() string {
	switch s {
	case ActorIdle:
		return "idle"
	case ActorMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// Actor is a unit that walks between tile centres. Its tile is always
// derived from the continuous position.
type Actor struct {
	id    ActorID
	x, y  float64
	speed float64

	state     ActorState
	waypoints []Pos
	heading   float64 // radians, last direction of travel
}

// NewActor places an idle actor at the centre of tile. A non-positive speed
// falls back to DefaultActorSpeed.
func NewActor(id ActorID, tile Pos, speed float64) *Actor {
	if speed <= 0 {
		speed = DefaultActorSpeed
	}
	x, y := CellToWorld(tile)
	return &Actor{id: id, x: x, y: y, speed: speed}
}

// ID returns the actor's id.
func (a *Actor) ID() ActorID { return a.id }

// Position returns the continuous world pixel position.
func (a *Actor) Position() (float64, float64) { return a.x, a.y }

// Tile returns the tile containing the actor.
func (a *Actor) Tile() Pos { return WorldToCell(a.x, a.y) }

// State returns Idle or Moving.
func (a *Actor) State() ActorState { return a.state }

// Moving reports whether the actor has waypoints left.
func (a *Actor) Moving() bool { return a.state == ActorMoving }

// Speed returns pixels per second.
func (a *Actor) Speed() float64 { return a.speed }

// Heading returns the last direction of travel in radians.
func (a *Actor) Heading() float64 { return a.heading }

// Waypoints returns a copy of the remaining queue, head first.
func (a *Actor) Waypoints() []Pos {
	out := make([]Pos, len(a.waypoints))
	copy(out, a.waypoints)
	return out
}

// SetTarget replaces the waypoint queue with a simplified route from the
// actor's current tile to target. On any error the actor is left untouched.
func (a *Actor) SetTarget(g *CostGrid, target Pos, interval int) error {
	from := a.Tile()
	if target == from {
		return fmt.Errorf("actor %d at %s: %w", a.id, from, ErrDegenerateTarget)
	}
	raw, err := g.FindPath(from, target)
	if err != nil {
		return err
	}
	wps := SimplifyRoute(g, raw, interval)
	// wps[0] is the tile the actor is already on.
	a.waypoints = append(a.waypoints[:0], wps[1:]...)
	a.state = ActorMoving
	return nil
}

// ClearTarget drops the queued route and keeps only the tile the actor
// occupies. An actor already on that tile's centre goes idle at once;
// otherwise it walks back to the centre first.
func (a *Actor) ClearTarget() {
	tile := a.Tile()
	a.waypoints = a.waypoints[:0]
	wx, wy := CellToWorld(tile)
	if math.Abs(wx-a.x) <= ArriveTolerance && math.Abs(wy-a.y) <= ArriveTolerance {
		a.x, a.y = wx, wy
		a.state = ActorIdle
		return
	}
	a.waypoints = append(a.waypoints, tile)
	a.state = ActorMoving
}

// Tick advances the actor by speed*dt pixels along its queue. A step never
// passes a waypoint centre; leftover distance carries on to the next one.
// It reports whether the final waypoint was reached during this tick.
func (a *Actor) Tick(dt float64) bool {
	if a.state != ActorMoving {
		return false
	}
	remaining := a.speed * dt
	for len(a.waypoints) > 0 {
		wx, wy := CellToWorld(a.waypoints[0])
		dx := wx - a.x
		dy := wy - a.y
		if math.Abs(dx) <= ArriveTolerance && math.Abs(dy) <= ArriveTolerance {
			a.x, a.y = wx, wy
			a.waypoints = a.waypoints[1:]
			continue
		}
		if remaining <= 0 {
			break
		}
		dist := math.Hypot(dx, dy)
		a.heading = math.Atan2(dy, dx)
		if dist <= remaining {
			a.x, a.y = wx, wy
			remaining -= dist
			a.waypoints = a.waypoints[1:]
			continue
		}
		a.x += dx / dist * remaining
		a.y += dy / dist * remaining
		remaining = 0
	}
	if len(a.waypoints) == 0 {
		a.state = ActorIdle
		return true
	}
	return false
}

// label is the short name used in event logs, e.g. "A3".
func (a *Actor) label() string { return fmt.Sprintf("A%d", a.id) }

// routeClear reports whether the remaining waypoint chain, starting from the
// current tile, still has line of sight on g.
func (a *Actor) routeClear(g *CostGrid) bool {
	prev := a.Tile()
	for _, wp := range a.waypoints {
		if !g.HasLineOfSight(prev, wp) {
			return false
		}
		prev = wp
	}
	return true
}
