// Package events publishes booking domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const DefaultQueue = "booking.confirmed"

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event *model.BookingConfirmedEvent) error
	Close() error
}

// NewPublisher returns a no-op publisher when url is empty.
func NewPublisher(url, queue string) Publisher {
	if url == "" {
		return NoopPublisher{}
	}
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQPPublisher{url: url, queue: queue}
}

// AMQPPublisher keeps one connection and channel, redialing when the broker
// closed them.
type AMQPPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// durable, survives broker restarts
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event *model.BookingConfirmedEvent) error {
	pub, err := BuildPublishing(event, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.closeLocked()
		return fmt.Errorf("publish %s: %w", p.queue, err)
	}

	logger.WithBooking("events", event.BookingID).Debug("booking.confirmed published", zap.String("queue", p.queue))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// BuildPublishing encodes the event as a persistent JSON message.
func BuildPublishing(event *model.BookingConfirmedEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("booking-%d-confirmed", event.BookingID),
		Type:         "booking.confirmed",
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

type NoopPublisher struct{}

func (NoopPublisher) PublishBookingConfirmed(ctx context.Context, event *model.BookingConfirmedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
