// Package audit publishes policy evaluation outcomes to Kafka.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"esbresolver/internal/platform/kafka/producer"
)

// DefaultTopic receives evaluation events unless configured otherwise.
const DefaultTopic = "esb.resolution.audit"

// ErrBufferFull is returned when the async buffer cannot take another event.
var ErrBufferFull = errors.New("audit buffer full")

// EventType names what happened.
type EventType string

const (
	EventResolutionEvaluated   EventType = "resolution.evaluated"
	EventInterceptionEvaluated EventType = "interception.evaluated"
)

// Outcome summarizes an evaluation.
type Outcome string

const (
	OutcomeResolved Outcome = "resolved"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeFailed   Outcome = "failed"
)

// Event is the JSON payload written to the audit topic.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	PolicyName  string    `json:"policy_name"`
	Version     string    `json:"version"`
	TesterMode  bool      `json:"tester_mode"`
	Subject     string    `json:"subject,omitempty"`
	Outcome     Outcome   `json:"outcome"`
	Reason      string    `json:"reason,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	AccessPoint string    `json:"access_point,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

//go:generate mockgen -source=audit.go -destination=mocks/mocks.go -package=mocks Producer

// Producer is the Kafka write side the publisher needs.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Publisher writes events to a Kafka topic, either inline or through a
// bounded background buffer.
type Publisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	events chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithTopic overrides DefaultTopic.
func WithTopic(topic string) Option {
	return func(p *Publisher) {
		if topic != "" {
			p.topic = topic
		}
	}
}

// WithLogger sets a logger for async delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithAsyncBuffer queues events and publishes them from a background
// goroutine.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan Event, size)
		}
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// NewPublisher panics on a nil producer.
func NewPublisher(prod Producer, opts ...Option) *Publisher {
	if prod == nil {
		panic("audit.NewPublisher: producer is required")
	}
	p := &Publisher{
		producer: prod,
		topic:    DefaultTopic,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.events != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit stamps and publishes an event. In async mode it only enqueues.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = p.newID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}

	if p.events == nil {
		return p.publish(ctx, event)
	}
	select {
	case p.events <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close drains the async buffer. It is safe to call more than once.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.events != nil {
			close(p.events)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.events {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := p.publish(ctx, event); err != nil {
			p.logger.Error("failed to publish audit event",
				"error", err,
				"event_id", event.ID,
				"policy", event.PolicyName,
			)
		}
		cancel()
	}
}

func (p *Publisher) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return p.producer.Produce(ctx, &producer.Message{
		Topic: p.topic,
		Key:   []byte(event.PolicyName),
		Value: payload,
		Headers: map[string]string{
			"event_id":   event.ID,
			"event_type": string(event.Type),
		},
	})
}

// Noop discards events.
type Noop struct{}

// Emit implements the emitter contract.
func (Noop) Emit(context.Context, Event) error { return nil }
