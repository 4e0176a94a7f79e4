// Package event publishes approval decisions for downstream consumers.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const ApprovalQueue = "approval_events"

const (
	KindLand     = "land"
	KindCropPlan = "crop_plan"
	KindNews     = "news"
	KindFarmer   = "farmer"
)

// Approval is emitted whenever an admin changes a record's status.
type Approval struct {
	Kind      string    `json:"kind"`
	ID        uint      `json:"id"`
	FarmerID  uint      `json:"farmer_id,omitempty"`
	Status    string    `json:"status"`
	Remark    string    `json:"remark,omitempty"`
	DecidedBy uint      `json:"decided_by,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	PublishApproval(ctx context.Context, ev Approval) error
	Close() error
}

// RabbitPublisher writes JSON messages to a durable queue.
type RabbitPublisher struct {
	conn  *amqp.Connection
	mu    sync.Mutex // amqp channels are not safe for concurrent publish
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

func NewRabbitPublisher(url string, log *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(ApprovalQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", ApprovalQueue, err)
	}
	log.Info("connected to RabbitMQ", zap.String("queue", ApprovalQueue))
	return &RabbitPublisher{conn: conn, ch: ch, queue: ApprovalQueue, log: log}, nil
}

func (p *RabbitPublisher) PublishApproval(ctx context.Context, ev Approval) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		Type:         ev.Kind,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Kind, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.log.Error("failed to close RabbitMQ channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct{ log *zap.Logger }

func NewLogPublisher(log *zap.Logger) *LogPublisher { return &LogPublisher{log: log} }

func (p *LogPublisher) PublishApproval(_ context.Context, ev Approval) error {
	p.log.Info("approval event",
		zap.String("kind", ev.Kind), zap.Uint("id", ev.ID), zap.String("status", ev.Status))
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Recorder keeps events in memory; tests use it to assert on publishes.
type Recorder struct {
	mu     sync.Mutex
	Events []Approval
}

func (r *Recorder) PublishApproval(_ context.Context, ev Approval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
	return nil
}

func (r *Recorder) Close() error { return nil }
