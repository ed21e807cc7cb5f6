package navigation

import "github.com/lixenwraith/maze-runner/maze"

const distUnreached = -1

// DistanceField stores BFS hop counts from every cell to a single target.
// On an undirected grid the distance from p to the target equals the distance from the target to p,
// so one sweep answers every ShortestDistance(g, p, target) query.
// A built field is read-only and safe to share between goroutines.
type DistanceField struct {
	grid      *maze.Grid
	target    maze.Point
	distances []int // Per-cell hop count, distUnreached if blocked or disconnected
	reached   int
}

// NewDistanceField sweeps g outward from target
func NewDistanceField(g *maze.Grid, target maze.Point) *DistanceField {
	f := &DistanceField{
		grid:      g,
		target:    target,
		distances: make([]int, g.Size()),
	}
	for i := range f.distances {
		f.distances[i] = distUnreached
	}
	if !g.IsOpen(target) {
		return f
	}

	start := g.Index(target)
	f.distances[start] = 0
	f.reached = 1

	queue := make([]int, 0, g.Size())
	queue = append(queue, start)
	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		curr := g.PointAt(idx)
		for _, d := range stepDirs {
			next := curr.Add(d)
			if !g.IsOpen(next) {
				continue
			}
			nIdx := g.Index(next)
			if f.distances[nIdx] != distUnreached {
				continue
			}
			f.distances[nIdx] = f.distances[idx] + 1
			f.reached++
			queue = append(queue, nIdx)
		}
	}
	return f
}

// Target returns the cell the field was computed for
func (f *DistanceField) Target() maze.Point {
	return f.target
}

// Distance returns the hop count from p to the target, ok is false if unreachable
func (f *DistanceField) Distance(p maze.Point) (int, bool) {
	if !f.grid.InBounds(p) {
		return 0, false
	}
	d := f.distances[f.grid.Index(p)]
	if d == distUnreached {
		return 0, false
	}
	return d, true
}

// DistanceOr returns the hop count from p or fallback if unreachable
func (f *DistanceField) DistanceOr(p maze.Point, fallback int) int {
	if d, ok := f.Distance(p); ok {
		return d
	}
	return fallback
}

// Reached returns how many cells are connected to the target, target included
func (f *DistanceField) Reached() int {
	return f.reached
}

// Next returns the neighbour of p one step closer to the target, ok is false at the target or when unreachable
func (f *DistanceField) Next(p maze.Point) (maze.Move, bool) {
	d, ok := f.Distance(p)
	if !ok || d == 0 {
		return 0, false
	}
	for _, m := range maze.Moves {
		if nd, ok := f.Distance(p.Add(m.Delta())); ok && nd == d-1 {
			return m, true
		}
	}
	return 0, false
}
