package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/rabbitmq/amqp091-go"
)

const amqpPublishTimeout = 5 * time.Second

// AMQPEventBus publishes events to a RabbitMQ topic exchange. The routing key
// is the event type, and a durable queue bound with "#" receives everything.
type AMQPEventBus struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	mu       sync.Mutex // amqp091 channels are not safe for concurrent publishing
	exchange string
	queue    string
	logger   *slog.Logger
}

// NewWithAMQP dials url and declares exchange, queue and binding.
func NewWithAMQP(url, exchange, queue string, logger *slog.Logger) (*AMQPEventBus, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	bus := &AMQPEventBus{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    queue,
		logger:   logger.With("bus", "amqp", "exchange", exchange),
	}
	if err := bus.setup(); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return bus, nil
}

func (b *AMQPEventBus) setup() error {
	if err := b.channel.ExchangeDeclare(
		b.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := b.channel.QueueDeclare(
		b.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := b.channel.QueueBind(b.queue, "#", b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Emit publishes the event as a persistent JSON message.
func (b *AMQPEventBus) Emit(ctx context.Context, event events.Event) error {
	body, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("amqp event bus: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, amqpPublishTimeout)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	err = b.channel.PublishWithContext(
		ctx,
		b.exchange,   // exchange
		event.Type(), // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         event.Type(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp event bus: publish: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Close closes the channel and the connection.
func (b *AMQPEventBus) Close() error {
	var errs []error
	if b.channel != nil {
		errs = append(errs, b.channel.Close())
	}
	if b.conn != nil {
		errs = append(errs, b.conn.Close())
	}
	return errors.Join(errs...)
}

var _ eventbus.Emitter = (*AMQPEventBus)(nil)
