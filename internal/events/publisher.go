package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

// Publisher delivers instruction outcome events to downstream observers.
type Publisher interface {
	// PublishOutcome publishes a single event to "{prefix}.{status}".
	PublishOutcome(ctx context.Context, event *InstructionEvent) error

	// Close releases the underlying connection.
	Close() error
}

const (
	// StreamName is the JetStream stream holding outcome events.
	StreamName = "INSTRUCTIONS"

	// DefaultSubjectPrefix is used when no prefix is configured.
	DefaultSubjectPrefix = "instructions"

	// StreamRetention is how long outcome events are kept.
	StreamRetention = 7 * 24 * time.Hour
)

// JetStreamPublisher publishes outcome events to NATS JetStream.
type JetStreamPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	prefix string
	logger *zap.Logger
}

// NewJetStreamPublisher connects to NATS and ensures the stream exists.
func NewJetStreamPublisher(natsURL, prefix string, logger *zap.Logger) (*JetStreamPublisher, error) {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("payment-instructions"),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	p := &JetStreamPublisher{nc: nc, js: js, prefix: prefix, logger: logger}
	if err := p.ensureStream(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	logger.Info("nats publisher initialized", zap.String("url", natsURL), zap.String("stream", StreamName), zap.String("prefix", prefix))
	return p, nil
}

func (p *JetStreamPublisher) ensureStream() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := p.js.Stream(ctx, StreamName); err == nil {
		p.logger.Debug("jetstream stream already exists", zap.String("stream", StreamName))
		return nil
	}

	p.logger.Info("creating jetstream stream", zap.String("stream", StreamName))
	_, err := p.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "Payment instruction outcomes",
		Subjects:    []string{p.prefix + ".*"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      StreamRetention,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	return nil
}

// Subject returns the subject an event is published to.
func (p *JetStreamPublisher) Subject(event *InstructionEvent) string {
	return Subject(p.prefix, event.Status)
}

// PublishOutcome publishes a single outcome event.
func (p *JetStreamPublisher) PublishOutcome(ctx context.Context, event *InstructionEvent) error {
	subject := p.Subject(event)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal instruction event: %w", err)
	}

	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.ID)); err != nil {
		return fmt.Errorf("publish instruction event: %w", err)
	}

	p.logger.Debug("published instruction event",
		zap.String("subject", subject),
		zap.String("event_id", event.ID),
		zap.String("status_code", event.StatusCode),
	)
	return nil
}

// Close closes the NATS connection.
func (p *JetStreamPublisher) Close() error {
	if p.nc != nil {
		p.nc.Close()
		p.logger.Info("nats publisher closed")
	}
	return nil
}

// Subject builds "{prefix}.{status}".
func Subject(prefix, status string) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return prefix + "." + status
}

// NopPublisher drops every event. Used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishOutcome(context.Context, *InstructionEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
