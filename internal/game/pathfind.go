package game

import (
	"container/heap"
	"fmt"
	"math"
)

// Route is a path through the grid, start and goal inclusive, in traversal
// order. Each query produces a fresh Route.
type Route []Pos

// Cost sums the cost of every cell entered along the route; the start cell
// is not entered and does not count.
func (r Route) Cost(g *CostGrid) uint64 {
	var total uint64
	for i := 1; i < len(r); i++ {
		total += uint64(g.At(r[i]))
	}
	return total
}

// dirs is the neighbour enumeration order: E, W, S, N, SE, NE, SW, NW.
var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// --- Dijkstra ---

type frontierItem struct {
	idx  int
	dist uint64
	seq  uint64 // push order, breaks ties
}

type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	it := old[len(old)-1]
	*f = old[:len(old)-1]
	return it
}

// FindPath runs a uniform-cost search from one cell to another. Entering a
// cell costs that cell's value; Impassable cells are never expanded, so an
// impassable endpoint yields ErrNoPath. The search stops the first time the
// goal is popped.
func (g *CostGrid) FindPath(from, to Pos) (Route, error) {
	if err := g.check(from.X, from.Y); err != nil {
		return nil, fmt.Errorf("path start: %w", err)
	}
	if err := g.check(to.X, to.Y); err != nil {
		return nil, fmt.Errorf("path goal: %w", err)
	}
	if !g.Passable(from) || !g.Passable(to) {
		return nil, fmt.Errorf("%s -> %s: endpoint impassable: %w", from, to, ErrNoPath)
	}
	if from == to {
		return Route{from}, nil
	}

	n := g.Len()
	dist := make([]uint64, n)
	parent := make([]int, n)
	for i := range dist {
		dist[i] = math.MaxUint64
		parent[i] = -1
	}
	done := make([]bool, n)

	start, goal := g.Index(from.X, from.Y), g.Index(to.X, to.Y)
	dist[start] = 0
	var seq uint64
	f := &frontier{{idx: start}}

	for f.Len() > 0 {
		cur := heap.Pop(f).(frontierItem)
		if done[cur.idx] {
			continue
		}
		done[cur.idx] = true
		if cur.idx == goal {
			return g.buildRoute(parent, goal), nil
		}

		cp := g.PosOf(cur.idx)
		for _, d := range dirs {
			np := cp.Shift(d[0], d[1])
			c := g.At(np)
			if c == Impassable {
				continue
			}
			ni := g.Index(np.X, np.Y)
			if done[ni] {
				continue
			}
			nd := cur.dist + uint64(c)
			if nd >= dist[ni] {
				continue
			}
			dist[ni] = nd
			parent[ni] = cur.idx
			seq++
			heap.Push(f, frontierItem{idx: ni, dist: nd, seq: seq})
		}
	}
	return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrNoPath)
}

func (g *CostGrid) buildRoute(parent []int, goal int) Route {
	var r Route
	for i := goal; i != -1; i = parent[i] {
		r = append(r, g.PosOf(i))
	}
	// Reverse
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return r
}
