// Package graph publishes extension model facts to the knowledge graph over NATS.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/extmodel/export"
	"github.com/c360studio/extmodel/metrics"
	"github.com/c360studio/extmodel/parser"
)

// GraphIngestSubject is the default subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Conn is the part of a NATS connection the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

// flusher is implemented by *nats.Conn.
type flusher interface {
	FlushWithContext(ctx context.Context) error
}

// Connect opens a NATS connection named for this client.
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// Publisher publishes entities of parsed extensions.
type Publisher struct {
	conn    Conn
	subject string
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSubject overrides the ingestion subject.
func WithSubject(subject string) Option {
	return func(p *Publisher) {
		if subject != "" {
			p.subject = subject
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// WithMetrics records published facts and failures.
func WithMetrics(m *metrics.Collector) Option {
	return func(p *Publisher) { p.metrics = m }
}

// NewPublisher creates a publisher. A nil conn makes every publish a no-op.
func NewPublisher(conn Conn, opts ...Option) *Publisher {
	p := &Publisher{conn: conn, subject: GraphIngestSubject, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enabled reports whether the publisher has a connection.
func (p *Publisher) Enabled() bool { return p != nil && p.conn != nil }

// PublishExtension publishes every entity of x, one message per entity, and
// returns the number of facts published.
func (p *Publisher) PublishExtension(ctx context.Context, x *parser.Extension, opts export.FactOptions) (int, error) {
	if !p.Enabled() {
		return 0, nil // Skip publishing if no NATS connection (graceful degradation)
	}

	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	published := 0
	for _, entity := range export.Entities(x, opts) {
		if err := p.publish(ctx, entity, opts.Now); err != nil {
			if p.metrics != nil {
				p.metrics.PublishErrors.Inc()
			}
			return published, err
		}
		published += len(entity.Triples)
	}

	if f, ok := p.conn.(flusher); ok {
		if err := f.FlushWithContext(ctx); err != nil {
			return published, fmt.Errorf("flush extension %s: %w", x.Name(), err)
		}
	}
	if p.metrics != nil {
		p.metrics.FactsPublished.Add(float64(published))
	}
	p.logger.Debug("Published extension", "extension", x.Name(), "facts", published, "subject", p.subject)
	return published, nil
}

func (p *Publisher) publish(ctx context.Context, entity export.Entity, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload := &EntityPayload{ID: entity.ID, TripleData: entity.Triples, UpdatedAt: now}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("entity %s: %w", entity.ID, err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", entity.ID, err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish entity %s: %w", entity.ID, err)
	}
	return nil
}
