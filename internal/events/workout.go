// Package events defines the payloads exchanged over Kafka.
package events

import "time"

// SensorPackage is the raw reading sent by a wearable for a single workout.
type SensorPackage struct {
	TenantID    string    `json:"tenant_id"`
	UserID      string    `json:"user_id"`
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
	ReceivedAt  time.Time `json:"received_at,omitempty"`
}

// SummaryRecorded is emitted once a workout summary has been computed and stored.
type SummaryRecorded struct {
	SummaryID     string    `json:"summary_id"`
	TenantID      string    `json:"tenant_id"`
	UserID        string    `json:"user_id"`
	TrainingType  string    `json:"training_type"`
	DurationHours float64   `json:"duration_hours"`
	DistanceKm    float64   `json:"distance_km"`
	MeanSpeedKmh  float64   `json:"mean_speed_kmh"`
	Calories      float64   `json:"calories"`
	Message       string    `json:"message"`
	RecordedAt    time.Time `json:"recorded_at"`
}

const (
	// EventTypeSensorPackage tags sensor package records.
	EventTypeSensorPackage = "workout.sensor_package"
	// EventTypeSummaryRecorded tags summary records.
	EventTypeSummaryRecorded = "workout.summary_recorded"
)
