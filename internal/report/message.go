// Package report renders computed workout metrics as a summary line.
package report

import (
	"fmt"

	"example.com/ftracker/internal/training"
)

// InfoMessage carries the computed metrics of a single workout.
type InfoMessage struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration_hours"`
	Distance     float64 `json:"distance_km"`
	Speed        float64 `json:"mean_speed_kmh"`
	Calories     float64 `json:"calories"`
}

// Show derives the InfoMessage of a workout.
func Show(w training.Workout) InfoMessage {
	return InfoMessage{
		TrainingType: w.TrainingType(),
		Duration:     w.Duration(),
		Distance:     w.Distance(),
		Speed:        w.MeanSpeed(),
		Calories:     w.SpentCalories(),
	}
}

// Message renders the summary line. Every number keeps exactly three decimals.
func (m InfoMessage) Message() string {
	return fmt.Sprintf("Training type: %s; Duration: %.3f h.; Distance: %.3f km; Mean speed: %.3f km/h; Calories spent: %.3f.",
		m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories)
}

func (m InfoMessage) String() string {
	return m.Message()
}
