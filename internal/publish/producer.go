// Package publish delivers workout events to Kafka.
package publish

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrUnroutedEvent is returned when no topic is configured for an event type.
var ErrUnroutedEvent = errors.New("no topic configured for event type")

// Producer writes workout events to Kafka. Each event type is routed to one
// topic and owns a writer created on first use.
type Producer struct {
	brokers []string
	routes  map[string]string

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewProducer builds a Producer. routes maps event types to topic names.
func NewProducer(brokers []string, routes map[string]string) *Producer {
	copied := make(map[string]string, len(routes))
	for eventType, topic := range routes {
		copied[eventType] = topic
	}
	return &Producer{
		brokers: brokers,
		routes:  copied,
		writers: make(map[string]*kafka.Writer),
	}
}

// Send stamps each message with the event_type header and writes the batch to
// the topic routed for eventType.
func (p *Producer) Send(ctx context.Context, eventType string, msgs ...kafka.Message) error {
	writer, err := p.writerFor(eventType)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, stampEventType(eventType, msgs)...)
}

func (p *Producer) writerFor(eventType string) (*kafka.Writer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[eventType]; ok {
		return writer, nil
	}
	topic, ok := p.routes[eventType]
	if !ok || topic == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnroutedEvent, eventType)
	}

	// Keys are tenant:user, so the hash balancer keeps a user's summaries in order.
	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchTimeout: 50 * time.Millisecond,
	}
	p.writers[eventType] = writer
	return writer, nil
}

// Close flushes and releases every writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for eventType, writer := range p.writers {
		if err := writer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s writer: %w", eventType, err))
		}
		delete(p.writers, eventType)
	}
	return errors.Join(errs...)
}

func stampEventType(eventType string, msgs []kafka.Message) []kafka.Message {
	out := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		headers := make([]kafka.Header, 0, len(msg.Headers)+1)
		headers = append(headers, kafka.Header{Key: "event_type", Value: []byte(eventType)})
		for _, h := range msg.Headers {
			if h.Key != "event_type" {
				headers = append(headers, h)
			}
		}
		msg.Headers = headers
		out[i] = msg
	}
	return out
}
