package catalog

// Synthetic keys for the snapshot aggregates that can be weighted alongside
// objective keys.
const (
	HealthOverall   = "health_overall"
	ProjectsOverall = "projects_overall"
)

// Weights maps objective keys (or the synthetic aggregates) to non-negative
// weights. Keys left out do not contribute to the overall score.
type Weights map[string]float64

// DefaultWeights is the planner weighting. Projects weigh most because they
// are the most concrete goals.
func DefaultWeights() Weights {
	return Weights{
		ExerciseMinutes:   0.15,
		HealthyMeal:       0.10,
		WaterLiters:       0.05,
		MeditationMinutes: 0.10,
		ReadingPages:      0.10,
		OvertimeHours:     0.15,
		HealthOverall:     0.15,
		ProjectsOverall:   0.20,
	}
}

// Total is the sum of the usable weights.
func (w Weights) Total() float64 {
	var sum float64
	for _, v := range w {
		if v > 0 {
			sum += v
		}
	}
	return sum
}
