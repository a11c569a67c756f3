package game

// bresenham visits every cell on the rasterised line from a to b, both ends
// included, in order. It stops early when visit returns false.
func bresenham(a, b Pos, visit func(Pos) bool) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		if !visit(Pos{X: x, Y: y}) {
			return
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// LineCells returns the Bresenham cells from a to b inclusive.
func LineCells(a, b Pos) []Pos {
	var cells []Pos
	bresenham(a, b, func(p Pos) bool {
		cells = append(cells, p)
		return true
	})
	return cells
}

// HasLineOfSight reports whether every cell on the line from a to b
// (inclusive) is passable.
func (g *CostGrid) HasLineOfSight(a, b Pos) bool {
	clear := true
	bresenham(a, b, func(p Pos) bool {
		if !g.Passable(p) {
			clear = false
		}
		return clear
	})
	return clear
}
