package training

const (
	runningCaloriesMeanSpeedMultiplier = 18
	runningCaloriesMeanSpeedShift      = 1.79
)

// Running is a run measured in steps.
type Running struct {
	training
}

// NewRunning builds a Running workout from the step count, duration in hours and weight in kg.
func NewRunning(action, duration, weight float64) Running {
	return Running{training: training{action: action, duration: duration, weight: weight}}
}

// TrainingType returns "Running".
func (Running) TrainingType() string { return "Running" }

// SpentCalories derives calories from the mean speed, weight and duration in minutes.
func (r Running) SpentCalories() float64 {
	return (runningCaloriesMeanSpeedMultiplier*r.MeanSpeed() + runningCaloriesMeanSpeedShift) *
		r.weight / mInKm * (minInHour * r.duration)
}
