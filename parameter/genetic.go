package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of genomes in each population
	GAPoolSize = 100

	// GAGenomeLength is the number of moves in every genome
	GAGenomeLength = 200

	// GAMaxIterations caps evaluated generations per run
	GAMaxIterations = 50

	// GASelectionFraction is the top share of the population kept as breeding pool (top_n)
	GASelectionFraction = 0.06

	// GAEliteCount is best performers copied unchanged into the next generation
	GAEliteCount = 0

	// GACrossoverRate is probability a parent pair is recombined rather than cloned
	GACrossoverRate = 0.4

	// GACrossoverMixProbability for uniform (scattered) crossover
	GACrossoverMixProbability = 0.5

	// GAPerturbationRate is probability an offspring is mutated at all (0.0-1.0)
	GAPerturbationRate = 1.0

	// GAPerturbationStrength is the share of genes replaced in a mutated offspring (0.0-1.0)
	GAPerturbationStrength = 0.01

	// GATournamentSize for tournament selection pressure
	GATournamentSize = 3

	// GAPatience stops a run after this many generations without best-ever improvement, 0 disables
	GAPatience = 0

	// GAParallelism for batch evaluation, 0 uses GOMAXPROCS
	GAParallelism = 0
)

// Genetic Algorithm - Seeds
// Population and breeding seeds differ from the maze seed so a fixed maze can be re-rolled
const (
	GAPopulationSeed = 12
	GABreedSeed      = 7
)

// Reference run: 15x15 centre goal, 300 genomes of 130 moves, top 1%
const (
	GAReferencePoolSize          = 300
	GAReferenceGenomeLength      = 130
	GAReferenceSelectionFraction = 0.01
)
