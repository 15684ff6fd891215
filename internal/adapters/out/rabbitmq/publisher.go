package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"orderdesk/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange receives every order event.
const DefaultExchange = "order_events"

// statusChangedMessage is the wire form of ports.OrderStatusChanged.
type statusChangedMessage struct {
	PublicCode   string    `json:"public_code"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	DeliveryType string    `json:"delivery_type"`
	ChangedBy    string    `json:"changed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// OrderEventPublisher implements ports.OrderEventPublisher. Routing keys have the
// form order.status.<to>, so consumers can bind to the statuses they care about.
//
// One channel is shared by all publishes; the exchange is declared once per
// channel. A failed publish drops the channel and the next event opens a new one.
type OrderEventPublisher struct {
	conn     Connection
	exchange string

	mu sync.Mutex
	ch Channel
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

func NewOrderEventPublisher(conn Connection, exchange string) *OrderEventPublisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &OrderEventPublisher{conn: conn, exchange: exchange}
}

func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	body, err := json.Marshal(statusChangedMessage{
		PublicCode:   event.PublicCode.String(),
		From:         event.From.String(),
		To:           event.To.String(),
		DeliveryType: event.DeliveryType.String(),
		ChangedBy:    event.ChangedBy,
		OccurredAt:   event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, p.exchange, RoutingKey(event), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    event.OccurredAt,
		Type:         "order.status_changed",
		Body:         body,
	})
	if err != nil {
		p.discard(ch)
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// channel returns the shared channel, opening it and declaring the exchange
// when there is none or the broker closed it.
func (p *OrderEventPublisher) channel() (Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err = ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.ch = ch
	return ch, nil
}

func (p *OrderEventPublisher) discard(ch Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == ch {
		p.ch = nil
	}
	_ = ch.Close()
}

// Close releases the shared channel. The connection is owned by the caller.
func (p *OrderEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

// RoutingKey returns order.status.<target status>.
func RoutingKey(event ports.OrderStatusChanged) string {
	return "order.status." + event.To.String()
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishStatusChanged(context.Context, ports.OrderStatusChanged) error {
	return nil
}
