package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"example.com/ftracker/internal/events"
)

// EventSender is satisfied by Producer.
type EventSender interface {
	Send(ctx context.Context, eventType string, msgs ...kafka.Message) error
}

// SummaryPublisher emits SummaryRecorded events keyed by tenant and user.
type SummaryPublisher struct {
	sender EventSender
}

// NewSummaryPublisher constructs a SummaryPublisher.
func NewSummaryPublisher(sender EventSender) *SummaryPublisher {
	return &SummaryPublisher{sender: sender}
}

// Publish encodes the event as JSON and sends it as workout.summary_recorded.
func (p *SummaryPublisher) Publish(ctx context.Context, event events.SummaryRecorded) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%s", event.TenantID, event.UserID)),
		Value: body,
		Time:  event.RecordedAt,
		Headers: []kafka.Header{
			{Key: "tenant_id", Value: []byte(event.TenantID)},
		},
	}
	if err := p.sender.Send(ctx, events.EventTypeSummaryRecorded, msg); err != nil {
		return fmt.Errorf("publish summary %s: %w", event.SummaryID, err)
	}
	return nil
}
