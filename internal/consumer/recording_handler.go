package consumer

import (
	"context"

	"example.com/ftracker/internal/domain"
)

// Recorder is satisfied by *domain.Service.
type Recorder interface {
	Record(ctx context.Context, input domain.RecordInput) (*domain.Summary, error)
}

// RecordingHandler stores a summary for every consumed sensor package.
type RecordingHandler struct {
	recorder Recorder
}

// NewRecordingHandler constructs a handler backed by the provided recorder.
func NewRecordingHandler(recorder Recorder) *RecordingHandler {
	return &RecordingHandler{recorder: recorder}
}

// Handle records the package. Unknown workout codes, wrong reading counts and
// readings that yield non-finite metrics are reported as PermanentError.
func (h *RecordingHandler) Handle(ctx context.Context, msg Message) error {
	_, err := h.recorder.Record(ctx, domain.RecordInput{
		TenantID:    msg.TenantID,
		UserID:      msg.Package.UserID,
		WorkoutType: msg.Package.WorkoutType,
		Data:        msg.Package.Data,
		Source:      "kafka",
	})
	if err != nil && domain.IsRejected(err) {
		return &PermanentError{Err: err}
	}
	return err
}
