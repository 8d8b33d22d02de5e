package training

import "math"

const (
	walkingCaloriesWeightMultiplier = 0.035
	walkingSpeedHeightMultiplier    = 0.029
)

// SportsWalking is a walk measured in steps. Height is in cm.
type SportsWalking struct {
	training
	height float64
}

// NewSportsWalking builds a SportsWalking workout.
func NewSportsWalking(action, duration, weight, height float64) SportsWalking {
	return SportsWalking{
		training: training{action: action, duration: duration, weight: weight},
		height:   height,
	}
}

// TrainingType returns "SportsWalking".
func (SportsWalking) TrainingType() string { return "SportsWalking" }

// SpentCalories derives calories from weight, the squared mean speed over height and the duration.
func (w SportsWalking) SpentCalories() float64 {
	return (walkingCaloriesWeightMultiplier*w.weight +
		(math.Pow(w.MeanSpeed(), 2)/w.height)*walkingSpeedHeightMultiplier*w.weight) *
		w.duration * minInHour
}
