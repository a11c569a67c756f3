package game

import (
	"fmt"
	"sort"
	"strings"
)

// --- Snapshot types ---

// ActorReport captures a single actor's state.
type ActorReport struct {
	ID        ActorID
	Label     string
	Tile      Pos
	State     ActorState
	Waypoints []Pos
	Arrivals  int
}

// WorldReport is a full snapshot of the world at one tick.
type WorldReport struct {
	Tick   int
	Seed   int64
	Width  int
	Height int
	Noise  NoiseKind

	// Terrain histogram and passable share.
	Terrain      map[Category]int
	PassablePct  float64
	Buildings    map[BuildingKind]int
	Actors       []ActorReport
	Targets      int
	Arrivals     int
	Rejections   int
	HaltedActors int
}

// BuildReport collects a WorldReport from the world and its event log.
func BuildReport(w *World) WorldReport {
	m := w.Map()
	r := WorldReport{
		Tick:      w.Tick(),
		Seed:      m.Seed,
		Width:     m.Width,
		Height:    m.Height,
		Noise:     w.cfg.Map.Noise.Kind,
		Terrain:   m.CategoryCounts(),
		Buildings: make(map[BuildingKind]int),
	}
	passable := 0
	for _, c := range m.Costs().Cells() {
		if c != Impassable {
			passable++
		}
	}
	r.PassablePct = float64(passable) / float64(m.Len()) * 100
	for _, b := range w.buildings {
		r.Buildings[b.Kind]++
	}

	arrivals := map[string]int{}
	for _, e := range w.log.Filter("move", "arrived") {
		arrivals[e.Actor]++
	}
	for _, a := range w.actors {
		r.Actors = append(r.Actors, ActorReport{
			ID:        a.id,
			Label:     a.label(),
			Tile:      a.Tile(),
			State:     a.state,
			Waypoints: a.Waypoints(),
			Arrivals:  arrivals[a.label()],
		})
	}
	r.Targets = w.log.CountCategory("move", "target")
	r.Arrivals = w.log.CountCategory("move", "arrived")
	r.Rejections = w.log.CountCategory("move", "rejected")
	r.HaltedActors = w.log.CountCategory("move", "halted")
	return r
}

// Format renders the report as plain text suitable for a clipboard or a
// terminal.
func (r WorldReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== World Report T=%d ===\n", r.Tick)
	fmt.Fprintf(&sb, "seed=%d size=%dx%d noise=%s\n", r.Seed, r.Width, r.Height, r.Noise)
	fmt.Fprintf(&sb, "terrain: deepwater=%d water=%d sand=%d grass=%d passable=%.1f%%\n",
		r.Terrain[CategoryDeepWater], r.Terrain[CategoryWater], r.Terrain[CategorySand], r.Terrain[CategoryGrass], r.PassablePct)

	sb.WriteString("buildings:")
	if len(r.Buildings) == 0 {
		sb.WriteString(" none")
	}
	kinds := make([]BuildingKind, 0, len(r.Buildings))
	for k := range r.Buildings {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(&sb, " %s=%d", k, r.Buildings[k])
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "moves: targets=%d arrivals=%d rejected=%d halted=%d\n",
		r.Targets, r.Arrivals, r.Rejections, r.HaltedActors)
	for _, a := range r.Actors {
		fmt.Fprintf(&sb, "  %-4s %-6s tile=%s waypoints=%d arrivals=%d\n",
			a.Label, a.State, a.Tile, len(a.Waypoints), a.Arrivals)
	}
	return sb.String()
}
