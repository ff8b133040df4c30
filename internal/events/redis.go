package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lumka-2025/queue-hero/internal/obs"
)

const defaultChannelPrefix = "queuehero:"

// RedisBroker carries fan-out across server processes sharing one store.
// Topics map 1:1 to Redis pub/sub channels under a prefix. When a broker is
// configured it replaces the hub as the publish target and Relay echoes every
// channel (local publishes included) back into the local hub, so delivery to
// attached sessions happens exactly once whether the transition ran here or
// in a sibling process.
type RedisBroker struct {
	client *redis.Client
	prefix string
	logger *obs.Logger
}

func NewRedisBroker(client *redis.Client, logger *obs.Logger) *RedisBroker {
	return &RedisBroker{
		client: client,
		prefix: defaultChannelPrefix,
		logger: logger,
	}
}

func (b *RedisBroker) channel(topic string) string {
	return b.prefix + topic
}

func (b *RedisBroker) Publish(ctx context.Context, topic string, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel(topic), payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", topic, err)
	}
	return nil
}

// Relay subscribes to every broker channel and replays remote events into the
// local hub, so sessions attached to this process see transitions performed
// by a sibling process. Runs until ctx is cancelled.
func (b *RedisBroker) Relay(ctx context.Context, hub *Hub) {
	sub := b.client.PSubscribe(ctx, b.prefix+"*")
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				b.logger.Warn("drop undecodable relay payload", map[string]any{
					"channel": msg.Channel,
					"err":     err.Error(),
				})
				continue
			}
			topic := msg.Channel[len(b.prefix):]
			_ = hub.Publish(ctx, topic, evt)
		}
	}
}
