package runner

import (
	"github.com/lixenwraith/maze-runner/genetic"
	"github.com/lixenwraith/maze-runner/maze"
)

// Genome is a fixed-length move sequence
type Genome []maze.Move

// String returns keypad digits, the format accepted by ParseGenome
func (g Genome) String() string {
	return maze.FormatGenome(g)
}

// ParseGenome decodes keypad digits, wasd or UDLR letters
func ParseGenome(s string) (Genome, error) {
	moves, err := maze.ParseGenome(s)
	if err != nil {
		return nil, err
	}
	return Genome(moves), nil
}

// Counts returns how many of each move the genome holds, indexed by maze.Move
func (g Genome) Counts() [4]int {
	var counts [4]int
	for _, m := range g {
		if m.Valid() {
			counts[m]++
		}
	}
	return counts
}

// NewInitializer samples genomes of the given length uniformly over the four moves
func NewInitializer(length int) *genetic.UniformInitializer[Genome, maze.Move] {
	return &genetic.UniformInitializer[Genome, maze.Move]{Alphabet: maze.Moves, Length: length}
}

// NewPerturbator replaces genes with uniform draws over the four moves
func NewPerturbator() *genetic.ResetPerturbator[Genome, maze.Move] {
	return &genetic.ResetPerturbator[Genome, maze.Move]{Alphabet: maze.Moves}
}
