package game

// DefaultSimplifyInterval is the number of raw route steps after which a
// waypoint is emitted even when the straight line is still clear.
const DefaultSimplifyInterval = 5

// SimplifyRoute reduces a raw route to a short list of waypoints such that
// every consecutive pair has clear line of sight on g. The result starts
// with raw[0] and always ends with the last raw cell. interval <= 0 turns
// off the forced emission.
func SimplifyRoute(g *CostGrid, raw Route, interval int) []Pos {
	if len(raw) == 0 {
		return nil
	}
	out := []Pos{raw[0]}
	anchor := 0
	for i := 1; i < len(raw); i++ {
		if !g.HasLineOfSight(raw[anchor], raw[i]) {
			// raw[i-1] was visible from the anchor on the previous step.
			anchor = i - 1
			out = append(out, raw[anchor])
		}
		if interval > 0 && i-anchor >= interval {
			anchor = i
			out = append(out, raw[anchor])
		}
	}
	if last := raw[len(raw)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}
