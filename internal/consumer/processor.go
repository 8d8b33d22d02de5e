// Package consumer turns sensor packages read from Kafka into recorded workout summaries.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/ftracker/internal/events"
)

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded sensor packages.
type Handler interface {
	Handle(context.Context, Message) error
}

// PermanentError marks a handler failure that retrying cannot fix. The
// processor commits such messages instead of redelivering them.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Message is the decoded representation of a sensor package record.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	TenantID  string
	Package   events.SensorPackage
}

// Option configures optional behaviour for the Processor.
type Option func(*Processor)

// WithLogger overrides the logger used to report errors.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor pulls messages from Kafka, decodes them, and dispatches to a Handler.
type Processor struct {
	reader  Reader
	handler Handler
	logger  *slog.Logger
}

// NewProcessor constructs a Processor with the provided reader and handler.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{
		reader:  reader,
		handler: handler,
		logger:  slog.Default().With("component", "consumer"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts a blocking loop that processes Kafka messages until the context is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Error("fetch failed", "error", err)
			continue
		}

		decoded, decodeErr := decodeMessage(msg)
		if decodeErr != nil {
			p.logger.Warn("decode failed", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", decodeErr)
			recordDecodeError(msg.Topic)
			// Commit malformed messages to avoid poison-pill loops.
			p.commit(ctx, msg)
			continue
		}

		if handleErr := p.handler.Handle(ctx, decoded); handleErr != nil {
			var permanent *PermanentError
			if errors.As(handleErr, &permanent) {
				p.logger.Warn("sensor package rejected", "workout_type", decoded.Package.WorkoutType, "tenant_id", decoded.TenantID, "error", handleErr)
				recordRejected(decoded)
				p.commit(ctx, msg)
				continue
			}
			p.logger.Error("handler failed", "workout_type", decoded.Package.WorkoutType, "tenant_id", decoded.TenantID, "error", handleErr)
			recordHandlerError(decoded)
			continue
		}

		if p.commit(ctx, msg) {
			recordProcessed(decoded)
		}
	}
}

func (p *Processor) commit(ctx context.Context, msg kafka.Message) bool {
	if err := p.reader.CommitMessages(ctx, msg); err != nil {
		p.logger.Error("commit failed", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		return false
	}
	return true
}

func decodeMessage(msg kafka.Message) (Message, error) {
	if len(msg.Value) == 0 {
		return Message{}, errors.New("empty payload")
	}
	if eventType, ok := headerValue(msg, "event_type"); ok && string(eventType) != events.EventTypeSensorPackage {
		return Message{}, fmt.Errorf("unexpected event_type %q", eventType)
	}

	var pkg events.SensorPackage
	if err := json.Unmarshal(msg.Value, &pkg); err != nil {
		return Message{}, fmt.Errorf("invalid sensor package: %w", err)
	}

	tenantID := pkg.TenantID
	if header, ok := headerValue(msg, "tenant_id"); ok && len(header) > 0 {
		tenantID = string(header)
	}
	if strings.TrimSpace(tenantID) == "" {
		return Message{}, errors.New("missing tenant_id")
	}
	if strings.TrimSpace(pkg.UserID) == "" {
		return Message{}, errors.New("missing user_id")
	}
	pkg.TenantID = tenantID
	if pkg.ReceivedAt.IsZero() {
		pkg.ReceivedAt = msg.Time
	}

	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		TenantID:  tenantID,
		Package:   pkg,
	}, nil
}

func headerValue(msg kafka.Message, key string) ([]byte, bool) {
	for _, header := range msg.Headers {
		if header.Key == key {
			return header.Value, true
		}
	}
	return nil, false
}
