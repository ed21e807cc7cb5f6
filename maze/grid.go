package maze

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/maze-runner/parameter"
)

// Cell is the state of a single grid square
type Cell uint8

// Cell types
const (
	Wall Cell = iota
	Open
)

// Point is a grid coordinate, X is the column and Y the row
type Point struct {
	X, Y int
}

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a rectangular wall/open matrix stored row-major
// A Grid returned by Generate or Parse is never modified afterwards and may be shared across goroutines
type Grid struct {
	rows, cols int
	cells      []Cell
}

// newGrid allocates a grid filled with walls
func newGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols), // Wall is the zero value
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Size returns the number of cells
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether p lies inside the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// Index returns the flat row-major index of p, p must be in bounds
func (g *Grid) Index(p Point) int {
	return p.Y*g.cols + p.X
}

// PointAt is the inverse of Index
func (g *Grid) PointAt(idx int) Point {
	return Point{idx % g.cols, idx / g.cols}
}

// At returns the cell at p, out of bounds reads as Wall
func (g *Grid) At(p Point) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[g.Index(p)]
}

// IsOpen reports whether p is in bounds and walkable
func (g *Grid) IsOpen(p Point) bool {
	return g.At(p) == Open
}

// OpenCount returns the number of walkable cells
func (g *Grid) OpenCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Open {
			n++
		}
	}
	return n
}

// Equal reports cell-for-cell equality
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) set(p Point, c Cell) {
	g.cells[g.Index(p)] = c
}

// String renders the grid one row per line using the wall/open glyphs
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if g.cells[y*g.cols+x] == Open {
				sb.WriteByte(parameter.GlyphOpen)
			} else {
				sb.WriteByte(parameter.GlyphWall)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds a grid from text rows of wall and open glyphs
// Blank lines are skipped, every row must have the same width
func Parse(text string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidDimensions)
	}

	cols := len(lines[0])
	g := newGrid(len(lines), cols)
	for y, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidDimensions, y, len(line), cols)
		}
		for x := 0; x < cols; x++ {
			switch line[x] {
			case parameter.GlyphOpen:
				g.set(Point{x, y}, Open)
			case parameter.GlyphWall:
			default:
				return nil, fmt.Errorf("invalid glyph %q at %v", line[x], Point{x, y})
			}
		}
	}
	return g, nil
}
