// Package domain defines the business logic for recording workout summaries.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"example.com/ftracker/internal/events"
	"example.com/ftracker/internal/observability"
	"example.com/ftracker/internal/report"
	"example.com/ftracker/internal/training"
)

// ErrSummaryNotFound is returned when a summary cannot be located.
var ErrSummaryNotFound = errors.New("workout summary not found")

// SummaryRepository captures persistence operations.
type SummaryRepository interface {
	Create(ctx context.Context, summary Summary) error
	Get(ctx context.Context, tenantID, summaryID string) (*Summary, error)
	ListByUser(ctx context.Context, tenantID, userID string, cursor *Cursor, limit int) ([]Summary, *Cursor, error)
}

// Publisher announces recorded summaries to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event events.SummaryRecorded) error
}

// Service orchestrates workout computation and persistence.
type Service struct {
	repo      SummaryRepository
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a Service. A nil publisher disables event emission.
func NewService(repo SummaryRepository, publisher Publisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    slog.Default().With("component", "domain"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RecordInput captures a sensor package submitted through the API or Kafka.
type RecordInput struct {
	TenantID    string
	UserID      string
	WorkoutType string
	Data        []float64
	Source      string
}

// Compute dispatches the package and derives its report without side effects on storage.
func (s *Service) Compute(workoutType string, data []float64) (report.InfoMessage, error) {
	w, err := training.ReadPackage(workoutType, data)
	if err != nil {
		observability.RecordRejected(RejectReason(err))
		return report.InfoMessage{}, err
	}
	info := report.Show(w)
	if err := checkFinite(info); err != nil {
		observability.RecordRejected(RejectReason(err))
		return report.InfoMessage{}, err
	}
	observability.RecordComputed(info.TrainingType, info.Calories)
	return info, nil
}

// Record computes the summary, stores it and publishes a SummaryRecorded event.
// A publish failure is logged; the stored summary remains the source of truth.
func (s *Service) Record(ctx context.Context, input RecordInput) (*Summary, error) {
	info, err := s.Compute(input.WorkoutType, input.Data)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		ID:            uuid.NewString(),
		TenantID:      input.TenantID,
		UserID:        input.UserID,
		WorkoutType:   input.WorkoutType,
		Data:          append([]float64(nil), input.Data...),
		TrainingType:  info.TrainingType,
		DurationHours: info.Duration,
		DistanceKm:    info.Distance,
		MeanSpeedKmh:  info.Speed,
		Calories:      info.Calories,
		Message:       info.Message(),
		Source:        input.Source,
		RecordedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, summary); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, toEvent(summary)); err != nil {
			s.logger.Warn("summary publish failed", "summary_id", summary.ID, "tenant_id", summary.TenantID, "error", err)
		}
	}

	return &summary, nil
}

// Get fetches a summary by ID.
func (s *Service) Get(ctx context.Context, tenantID, summaryID string) (*Summary, error) {
	summary, err := s.repo.Get(ctx, tenantID, summaryID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, ErrSummaryNotFound
	}
	return summary, nil
}

// ListByUser fetches summaries with cursor pagination, newest first.
func (s *Service) ListByUser(ctx context.Context, tenantID, userID string, cursor *Cursor, limit int) ([]Summary, *Cursor, error) {
	return s.repo.ListByUser(ctx, tenantID, userID, cursor, limit)
}

// IsRejected reports whether err means the sensor package itself is unusable.
func IsRejected(err error) bool {
	return errors.Is(err, training.ErrUnsupportedWorkout) ||
		errors.Is(err, training.ErrArity) ||
		errors.Is(err, training.ErrInvalidReadings)
}

// RejectReason maps a dispatch error to a metric label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, training.ErrUnsupportedWorkout):
		return "unsupported_workout"
	case errors.Is(err, training.ErrArity):
		return "arity"
	case errors.Is(err, training.ErrInvalidReadings):
		return "invalid_readings"
	default:
		return "other"
	}
}

// checkFinite rejects reports whose metrics cannot be stored or rendered,
// e.g. a zero duration or a zero height.
func checkFinite(info report.InfoMessage) error {
	metrics := []struct {
		name  string
		value float64
	}{
		{"duration", info.Duration},
		{"distance", info.Distance},
		{"mean speed", info.Speed},
		{"calories", info.Calories},
	}
	for _, m := range metrics {
		if math.IsInf(m.value, 0) || math.IsNaN(m.value) {
			return fmt.Errorf("%w: %s of %s is %v", training.ErrInvalidReadings, m.name, info.TrainingType, m.value)
		}
	}
	return nil
}

func toEvent(s Summary) events.SummaryRecorded {
	return events.SummaryRecorded{
		SummaryID:     s.ID,
		TenantID:      s.TenantID,
		UserID:        s.UserID,
		TrainingType:  s.TrainingType,
		DurationHours: s.DurationHours,
		DistanceKm:    s.DistanceKm,
		MeanSpeedKmh:  s.MeanSpeedKmh,
		Calories:      s.Calories,
		Message:       s.Message,
		RecordedAt:    s.RecordedAt,
	}
}
