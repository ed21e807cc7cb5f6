package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/maze-runner/parameter"
)

// ErrInvalidDimensions is returned for grids that cannot be carved or endpoints outside the grid
var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// GoalPlacement selects the default goal cell when Config.Goal is nil
type GoalPlacement uint8

const (
	// GoalCenter places the goal at (cols/2, rows/2)
	GoalCenter GoalPlacement = iota
	// GoalCorner places the goal at the bottom-right cell
	GoalCorner
)

func (p GoalPlacement) String() string {
	switch p {
	case GoalCenter:
		return "center"
	case GoalCorner:
		return "corner"
	}
	return fmt.Sprintf("GoalPlacement(%d)", uint8(p))
}

// ParseGoalPlacement decodes "center" or "corner"
func ParseGoalPlacement(s string) (GoalPlacement, error) {
	switch s {
	case "center", "centre":
		return GoalCenter, nil
	case "corner":
		return GoalCorner, nil
	}
	return 0, fmt.Errorf("unknown goal placement %q", s)
}

type Config struct {
	Rows, Cols int

	// Seed drives every carving decision, equal seeds give identical grids
	Seed uint64

	// Start is the carving origin and the agent start cell
	Start Point

	Placement GoalPlacement
	Goal      *Point // Optional (nil = Placement)
}

// DefaultConfig is the 20x20 bottom-right goal maze
func DefaultConfig() Config {
	return Config{
		Rows:      parameter.MazeRows,
		Cols:      parameter.MazeCols,
		Seed:      parameter.MazeSeed,
		Placement: GoalCorner,
	}
}

// ReferenceConfig is the 15x15 centre goal maze
func ReferenceConfig() Config {
	return Config{
		Rows:      parameter.MazeReferenceRows,
		Cols:      parameter.MazeReferenceCols,
		Seed:      parameter.MazeSeed,
		Placement: GoalCenter,
	}
}

// GoalPoint resolves the goal cell for this configuration
func (c Config) GoalPoint() Point {
	if c.Goal != nil {
		return *c.Goal
	}
	if c.Placement == GoalCorner {
		return Point{c.Cols - 1, c.Rows - 1}
	}
	return Point{c.Cols / 2, c.Rows / 2}
}

// Validate checks dimensions and endpoints without carving
func (c Config) Validate() error {
	if c.Rows < parameter.MazeMinDimension || c.Cols < parameter.MazeMinDimension {
		return fmt.Errorf("%w: %dx%d, minimum is %dx%d", ErrInvalidDimensions,
			c.Rows, c.Cols, parameter.MazeMinDimension, parameter.MazeMinDimension)
	}
	bounds := Grid{rows: c.Rows, cols: c.Cols}
	if !bounds.InBounds(c.Start) {
		return fmt.Errorf("%w: start %v outside %dx%d grid", ErrInvalidDimensions, c.Start, c.Rows, c.Cols)
	}
	if goal := c.GoalPoint(); !bounds.InBounds(goal) {
		return fmt.Errorf("%w: goal %v outside %dx%d grid", ErrInvalidDimensions, goal, c.Rows, c.Cols)
	}
	return nil
}

type Result struct {
	Grid        *Grid
	Start, Goal Point
	// Solution is one shortest start-to-goal path including both endpoints
	Solution []Point
}

// Generate carves a maze with a seeded randomized depth-first search.
// Cells sharing the start cell's row and column parity form the carving lattice; walls between
// lattice cells are opened as the search advances. A trailing row or column left by even
// dimensions stays wall except where the goal repair bridges into it.
func Generate(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	grid := newGrid(cfg.Rows, cfg.Cols)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	start := cfg.Start
	goal := cfg.GoalPoint()

	recursiveBacktracker(grid, start, rng)
	forceOpen(grid, goal)

	path := solveBFS(grid, start, goal)
	if path == nil {
		return Result{}, fmt.Errorf("%w: goal %v unreachable from %v after carving %dx%d",
			ErrInvalidDimensions, goal, start, cfg.Rows, cfg.Cols)
	}

	return Result{
		Grid:     grid,
		Start:    start,
		Goal:     goal,
		Solution: path,
	}, nil
}

// --- Core Algorithms ---

// Two-cell jumps in fixed order: up, down, left, right
var carveDirs = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

// Unit steps in fixed order: up, down, left, right
var stepDirs = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func recursiveBacktracker(grid *Grid, start Point, rng *rand.Rand) {
	visited := make([]bool, grid.Size())
	visited[grid.Index(start)] = true
	grid.set(start, Open)

	stack := []Point{start}
	candidates := make([]Point, 0, 4)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range carveDirs {
			next := curr.Add(d)
			if grid.InBounds(next) && !visited[grid.Index(next)] {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.IntN(len(candidates))]
		between := Point{(curr.X + next.X) / 2, (curr.Y + next.Y) / 2}

		grid.set(between, Open)
		grid.set(next, Open)
		visited[grid.Index(next)] = true

		stack = append(stack, next)
	}
}

// forceOpen opens p and, if no neighbour is walkable, one adjacent cell.
// Left and up come first since they face the carved lattice for the corner and centre goals;
// a neighbour already touching an open cell is preferred so the bridge connects.
func forceOpen(grid *Grid, p Point) {
	grid.set(p, Open)

	for _, d := range stepDirs {
		if grid.IsOpen(p.Add(d)) {
			return
		}
	}

	order := [4]Point{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	fallback := Point{-1, -1}
	for _, d := range order {
		n := p.Add(d)
		if !grid.InBounds(n) {
			continue
		}
		if fallback.X < 0 {
			fallback = n
		}
		for _, d2 := range stepDirs {
			nn := n.Add(d2)
			if nn != p && grid.IsOpen(nn) {
				grid.set(n, Open)
				return
			}
		}
	}

	if fallback.X >= 0 {
		grid.set(fallback, Open)
	}
}

func solveBFS(grid *Grid, start, end Point) []Point {
	if !grid.IsOpen(start) || !grid.IsOpen(end) {
		return nil
	}

	cameFrom := make([]int, grid.Size())
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	startIdx := grid.Index(start)
	cameFrom[startIdx] = startIdx

	queue := []Point{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			// Reconstruct Path
			path := []Point{}
			for idx := grid.Index(curr); ; idx = cameFrom[idx] {
				path = append(path, grid.PointAt(idx))
				if idx == startIdx {
					break
				}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range stepDirs {
			next := curr.Add(d)
			if grid.IsOpen(next) && cameFrom[grid.Index(next)] < 0 {
				cameFrom[grid.Index(next)] = grid.Index(curr)
				queue = append(queue, next)
			}
		}
	}
	return nil
}
