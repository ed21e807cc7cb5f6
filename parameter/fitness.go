package parameter

// Fitness - Smartness
const (
	// FitnessPenaltyWeight is subtracted from smartness per invalid move attempt
	FitnessPenaltyWeight = 1

	// FitnessGoalBonus is added in scalar mode when the final position is the goal
	FitnessGoalBonus = 100

	// FitnessParkBonus is added per idle move once the agent has halted on the goal
	FitnessParkBonus = 0
)
