package eventbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// EnvelopeHandler receives each event read back from a broker. Returning an
// error stops the tail.
type EnvelopeHandler func(Envelope) error

const (
	tailGroupID      = "ledgerctl-tail"
	redisTailBlock   = 5 * time.Second
	redisTailBatch   = 100
	kafkaTailMaxWait = 500 * time.Millisecond
)

// ErrNothingToTail is returned for drivers that keep events in process.
var ErrNothingToTail = errors.New("event bus driver keeps events in process; nothing to tail")

// Tail follows the broker selected by cfg from its newest event and calls fn
// for each envelope until ctx is cancelled. Cancellation is not an error.
func Tail(ctx context.Context, cfg *config.EventBus, fn EnvelopeHandler) error {
	switch cfg.Driver {
	case config.EventBusRedis:
		return TailRedis(ctx, cfg.URL, cfg.Topic, fn)
	case config.EventBusKafka:
		return TailKafka(ctx, cfg.URL, cfg.Topic, fn)
	case config.EventBusAMQP:
		return TailAMQP(ctx, cfg.URL, cfg.Topic, fn)
	case config.EventBusMemory, "":
		return ErrNothingToTail
	default:
		return fmt.Errorf("unsupported event bus driver %q", cfg.Driver)
	}
}

// TailKafka reads topic with a consumer group, committing each message once
// fn accepts it.
func TailKafka(ctx context.Context, brokers, topic string, fn EnvelopeHandler) error {
	parsed := parseBrokers(brokers)
	if len(parsed) == 0 {
		return errors.New("kafka tail: brokers are required")
	}
	if topic == "" {
		return errors.New("kafka tail: topic is required")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     parsed,
		GroupID:     tailGroupID,
		Topic:       topic,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     kafkaTailMaxWait,
	})
	defer reader.Close() //nolint:errcheck

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka tail: fetch: %w", err)
		}
		if err := deliver(msg.Value, fn); err != nil {
			return err
		}
		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			return fmt.Errorf("kafka tail: commit: %w", err)
		}
	}
}

// TailRedis blocks on XREAD against stream, starting after the newest entry.
func TailRedis(ctx context.Context, url, stream string, fn EnvelopeHandler) error {
	if url == "" || stream == "" {
		return errors.New("redis tail: url and stream are required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("redis tail: invalid URL: %w", err)
	}
	client := redis.NewClient(opt)
	defer client.Close() //nolint:errcheck

	lastID := "$"
	for {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{stream, lastID},
			Count:   redisTailBatch,
			Block:   redisTailBlock,
		}).Result()
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			return fmt.Errorf("redis tail: xread: %w", err)
		}
		for _, s := range streams {
			for _, msg := range s.Messages {
				lastID = msg.ID
				raw, _ := msg.Values["event"].(string)
				if err := deliver([]byte(raw), fn); err != nil {
					return err
				}
			}
		}
	}
}

// TailAMQP binds a private auto-delete queue to exchange so the durable
// service queue keeps its messages.
func TailAMQP(ctx context.Context, url, exchange string, fn EnvelopeHandler) error {
	if url == "" || exchange == "" {
		return errors.New("amqp tail: url and exchange are required")
	}
	conn, err := amqp091.Dial(url)
	if err != nil {
		return fmt.Errorf("amqp tail: dial: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp tail: open channel: %w", err)
	}
	defer ch.Close() //nolint:errcheck

	q, err := ch.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("amqp tail: declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("amqp tail: bind queue: %w", err)
	}
	deliveries, err := ch.ConsumeWithContext(ctx, q.Name, tailGroupID, true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("amqp tail: consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("amqp tail: delivery channel closed")
			}
			if err := deliver(d.Body, fn); err != nil {
				return err
			}
		}
	}
}

func deliver(data []byte, fn EnvelopeHandler) error {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return err
	}
	return fn(env)
}
