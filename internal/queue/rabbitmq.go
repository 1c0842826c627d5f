package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const originHeader = "x-origin"

// RabbitMQBroker maps each channel to a fanout exchange. Messages are
// transient and consumers auto-ack, so a dropped display simply misses
// events. Every broker instance carries an origin id; its own
// subscriptions skip messages it published itself.
type RabbitMQBroker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	origin  string
	mu      sync.RWMutex
}

type Config struct {
	URL string
}

func NewRabbitMQBroker(cfg Config) (*RabbitMQBroker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	broker := &RabbitMQBroker{
		conn:    conn,
		channel: channel,
		origin:  uuid.NewString(),
	}

	for _, name := range []string{ChannelChef, ChannelFrontDesk} {
		if err := broker.declareExchange(name); err != nil {
			broker.Close()
			return nil, err
		}
	}

	return broker, nil
}

func (b *RabbitMQBroker) declareExchange(channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.channel.ExchangeDeclare(
		channel,  // name
		"fanout", // kind
		false,    // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", channel, err)
	}

	return nil
}

func (b *RabbitMQBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	err := b.channel.PublishWithContext(
		ctx,
		channel, // exchange
		"",      // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Transient,
			ContentType:  "application/json",
			Body:         payload,
			Headers: amqp.Table{
				originHeader: b.origin,
			},
			Timestamp: time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	return nil
}

func (b *RabbitMQBroker) Subscribe(ctx context.Context, channel string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// exclusive auto-delete queue per subscriber: nothing accumulates
	// while the subscriber is away
	q, err := b.channel.QueueDeclare(
		"",    // name, server-generated
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare subscriber queue for %s: %w", channel, err)
	}

	if err := b.channel.QueueBind(q.Name, "", channel, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to %s: %w", channel, err)
	}

	msgs, err := b.channel.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer for %s: %w", channel, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if origin, _ := msg.Headers[originHeader].(string); origin == b.origin {
					continue
				}
				// at-most-once: handler errors are the handler's
				// problem, nothing is redelivered
				_ = handler(ctx, msg.Body)
			}
		}
	}()

	return nil
}

func (b *RabbitMQBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
