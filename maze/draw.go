package maze

import (
	"bufio"
	"io"

	"github.com/lixenwraith/maze-runner/parameter"
)

// DrawOptions selects the overlays rendered on top of the grid
type DrawOptions struct {
	Start  *Point
	Goal   *Point
	Player *Point
	Path   []Point

	// Spaced separates glyphs with a space so cells look square in most terminals
	Spaced bool
}

// Draw writes a text rendering of g.
// Overlay precedence: player, goal, start, path, then wall/open.
func Draw(w io.Writer, g *Grid, opts DrawOptions) error {
	onPath := make(map[Point]bool, len(opts.Path))
	for _, p := range opts.Path {
		onPath[p] = true
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			p := Point{x, y}

			var glyph byte
			switch {
			case opts.Player != nil && p == *opts.Player:
				glyph = parameter.GlyphPlayer
			case opts.Goal != nil && p == *opts.Goal:
				glyph = parameter.GlyphGoal
			case opts.Start != nil && p == *opts.Start:
				glyph = parameter.GlyphStart
			case onPath[p]:
				glyph = parameter.GlyphSolution
			case g.IsOpen(p):
				glyph = parameter.GlyphOpen
			default:
				glyph = parameter.GlyphWall
			}

			if opts.Spaced && x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteByte(glyph)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
