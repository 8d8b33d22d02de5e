package domain

import "time"

// Summary is a computed workout report stored in PostgreSQL.
type Summary struct {
	ID            string
	TenantID      string
	UserID        string
	WorkoutType   string
	Data          []float64
	TrainingType  string
	DurationHours float64
	DistanceKm    float64
	MeanSpeedKmh  float64
	Calories      float64
	Message       string
	Source        string
	RecordedAt    time.Time
}

// Cursor models the pagination token.
type Cursor struct {
	RecordedAt time.Time
	ID         string
}
