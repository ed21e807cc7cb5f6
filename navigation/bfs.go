package navigation

import "github.com/lixenwraith/maze-runner/maze"

// Neighbour order is fixed (up, down, left, right) so reconstructed paths are reproducible
var stepDirs = [4]maze.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// ShortestDistance returns the hop count of a shortest 4-connected path over open cells.
// ok is false when either endpoint is blocked or no path exists.
func ShortestDistance(g *maze.Grid, from, to maze.Point) (dist int, ok bool) {
	if !g.IsOpen(from) || !g.IsOpen(to) {
		return 0, false
	}
	if from == to {
		return 0, true
	}

	dists := make([]int, g.Size())
	for i := range dists {
		dists[i] = -1
	}
	dists[g.Index(from)] = 0

	queue := make([]int, 0, g.Size())
	queue = append(queue, g.Index(from))
	target := g.Index(to)

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		curr := g.PointAt(idx)

		for _, d := range stepDirs {
			next := curr.Add(d)
			if !g.IsOpen(next) {
				continue
			}
			nIdx := g.Index(next)
			// Mark on enqueue so no cell enters the queue twice
			if dists[nIdx] >= 0 {
				continue
			}
			dists[nIdx] = dists[idx] + 1
			if nIdx == target {
				return dists[nIdx], true
			}
			queue = append(queue, nIdx)
		}
	}
	return 0, false
}

// Path returns one shortest path from one endpoint to the other, inclusive, or nil when unreachable
func Path(g *maze.Grid, from, to maze.Point) []maze.Point {
	if !g.IsOpen(from) || !g.IsOpen(to) {
		return nil
	}

	cameFrom := make([]int, g.Size())
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	start := g.Index(from)
	cameFrom[start] = start
	target := g.Index(to)

	queue := []int{start}
	for head := 0; head < len(queue) && cameFrom[target] < 0; head++ {
		idx := queue[head]
		curr := g.PointAt(idx)
		for _, d := range stepDirs {
			next := curr.Add(d)
			if !g.IsOpen(next) {
				continue
			}
			nIdx := g.Index(next)
			if cameFrom[nIdx] >= 0 {
				continue
			}
			cameFrom[nIdx] = idx
			queue = append(queue, nIdx)
		}
	}

	if cameFrom[target] < 0 {
		return nil
	}

	var path []maze.Point
	for idx := target; ; idx = cameFrom[idx] {
		path = append(path, g.PointAt(idx))
		if idx == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ManhattanDistance ignores walls, used by the straight-line fitness metric
func ManhattanDistance(a, b maze.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Unreachable returns the distance sentinel for g: larger than any real path, still finite
func Unreachable(g *maze.Grid) int {
	return g.Size()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
