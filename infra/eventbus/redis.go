package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// redisStreamMaxLen caps the stream so an idle consumer cannot grow it without bound.
const redisStreamMaxLen = 100_000

// RedisEventBus publishes events to a Redis stream.
type RedisEventBus struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

// NewWithRedis connects to url and publishes to stream.
func NewWithRedis(ctx context.Context, url, stream string, logger *slog.Logger) (*RedisEventBus, error) {
	if url == "" || stream == "" {
		return nil, fmt.Errorf("redis event bus: url and stream are required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}
	return newRedisEventBus(client, stream, logger), nil
}

func newRedisEventBus(client *redis.Client, stream string, logger *slog.Logger) *RedisEventBus {
	return &RedisEventBus{
		client: client,
		stream: stream,
		logger: logger.With("bus", "redis", "stream", stream),
	}
}

// Emit appends the event to the stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}
	id, err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		MaxLen: redisStreamMaxLen,
		Approx: true,
		Values: map[string]any{"type": event.Type(), "event": string(data)},
	}).Result()
	if err != nil {
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type(), "id", id)
	return nil
}

// Close implements io.Closer.
func (b *RedisEventBus) Close() error {
	return b.client.Close()
}

var _ eventbus.Emitter = (*RedisEventBus)(nil)
