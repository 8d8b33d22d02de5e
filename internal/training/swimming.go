package training

const (
	swimmingCaloriesMeanSpeedShift   = 1.1
	swimmingCaloriesWeightMultiplier = 2
)

// Swimming is a pool session. Mean speed comes from the pool length in meters
// and the number of laps, not from the stroke count.
type Swimming struct {
	training
	lengthPool float64
	countPool  float64
}

// NewSwimming builds a Swimming workout.
func NewSwimming(action, duration, weight, lengthPool, countPool float64) Swimming {
	return Swimming{
		training:   training{action: action, duration: duration, weight: weight},
		lengthPool: lengthPool,
		countPool:  countPool,
	}
}

// TrainingType returns "Swimming".
func (Swimming) TrainingType() string { return "Swimming" }

// MeanSpeed is the pool distance covered per hour, in km/h.
func (s Swimming) MeanSpeed() float64 {
	return s.lengthPool * s.countPool / mInKm / s.duration
}

// SpentCalories derives calories from the pool mean speed, weight and duration.
func (s Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimmingCaloriesMeanSpeedShift) *
		swimmingCaloriesWeightMultiplier * s.weight * s.duration
}
