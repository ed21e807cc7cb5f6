package parameter

// Maze - Generation
const (
	// MazeRows and MazeCols are the default grid dimensions (bottom-right goal variant)
	MazeRows = 20
	MazeCols = 20

	// MazeReferenceRows and MazeReferenceCols are the centre-goal variant dimensions
	MazeReferenceRows = 15
	MazeReferenceCols = 15

	// MazeSeed seeds the carving generator
	MazeSeed = 42

	// MazeMinDimension is the smallest accepted row or column count
	MazeMinDimension = 2
)

// Maze - Text Glyphs
const (
	GlyphWall     = '#'
	GlyphOpen     = '.'
	GlyphPlayer   = 'P'
	GlyphGoal     = 'O'
	GlyphStart    = 'S'
	GlyphSolution = '*'
)
