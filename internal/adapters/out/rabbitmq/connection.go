// Package rabbitmq publishes order events to a topic exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the slice of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// Connection opens channels. It redials once when the broker dropped the link.
type Connection interface {
	Channel() (Channel, error)
	Close() error
}

// dialTimeout bounds connecting and redialing so a stalled broker fails fast.
const dialTimeout = 5 * time.Second

type amqpConnection struct {
	url    string
	mu     sync.Mutex
	conn   *amqp.Connection
	closed bool
}

// Dial connects to the broker at url.
func Dial(url string) (Connection, error) {
	conn, err := dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return &amqpConnection{url: url, conn: conn}, nil
}

func dial(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
}

// Channel opens a channel, redialing first if the broker dropped the link.
// The redial runs without holding the lock.
func (c *amqpConnection) Channel() (Channel, error) {
	conn, err := c.current()
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return ch, nil
}

func (c *amqpConnection) current() (*amqp.Connection, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errors.New("connection is closed")
	}
	conn := c.conn
	c.mu.Unlock()

	if !conn.IsClosed() {
		return conn, nil
	}

	fresh, err := dial(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.closed:
		_ = fresh.Close()
		return nil, errors.New("connection is closed")
	case !c.conn.IsClosed():
		// Another caller redialed first.
		_ = fresh.Close()
		return c.conn, nil
	}
	c.conn = fresh
	return fresh, nil
}

func (c *amqpConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}
