// Package training computes distance, mean speed and spent calories from raw
// sensor readings for the supported workout kinds.
package training

const (
	lenStep   = 0.65
	mInKm     = 1000
	minInHour = 60
)

// Workout exposes the metrics every workout kind can derive from its readings.
type Workout interface {
	// TrainingType is the identifying name shown in reports.
	TrainingType() string
	// Duration is the workout length in hours.
	Duration() float64
	// Distance is the covered distance in km.
	Distance() float64
	// MeanSpeed is the average speed in km/h.
	MeanSpeed() float64
	// SpentCalories is the energy spent in kcal.
	SpentCalories() float64
}

// training holds the readings shared by every workout kind. It has no
// SpentCalories method, so it never satisfies Workout on its own.
type training struct {
	action   float64
	duration float64
	weight   float64
}

func (t training) Duration() float64 {
	return t.duration
}

func (t training) Distance() float64 {
	return t.action * lenStep / mInKm
}

func (t training) MeanSpeed() float64 {
	return t.Distance() / t.duration
}
