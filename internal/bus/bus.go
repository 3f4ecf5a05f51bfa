// Package bus is the shared message bus between the mutation service
// and out-of-process consumers. Delivery is best-effort: one publish
// attempt, no acknowledgment, no ordering guarantee. Every payload
// carries a full state snapshot so consumers converge regardless of
// arrival order.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ChannelLevelUp carries level-change notifications.
	ChannelLevelUp = "level-up"
	// ChannelError is the dead-letter channel for payloads aimed at an
	// unrecognized channel.
	ChannelError = "errors"
)

var recognizedChannels = map[string]bool{
	ChannelLevelUp: true,
}

// Bus wraps a Redis client for pub/sub.
type Bus struct {
	client *redis.Client
}

func NewBus(addr, password string, db int) *Bus {
	return &Bus{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// NewBusWithClient wires an existing client, letting the process own
// the connection lifecycle.
func NewBusWithClient(client *redis.Client) *Bus {
	return &Bus{client: client}
}

func (b *Bus) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Bus) Close() error {
	return b.client.Close()
}

// Publish sends payload to channel as JSON. A payload aimed at an
// unrecognized channel is wrapped, payload included, and redirected to
// the error channel instead of being silently dropped.
func (b *Bus) Publish(ctx context.Context, channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if !recognizedChannels[channel] {
		return b.publishError(ctx, channel, data)
	}
	return b.client.Publish(ctx, channel, data).Err()
}

func (b *Bus) publishError(ctx context.Context, channel string, payload []byte) error {
	data, err := json.Marshal(deadLetter(channel, payload))
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, ChannelError, data).Err()
}

// deadLetter wraps a misaddressed payload so the error channel carries
// the full original content, not just the bad channel name.
func deadLetter(channel string, payload []byte) ErrorPayload {
	return ErrorPayload{
		Message:   fmt.Sprintf("unrecognized channel %s: %s", channel, payload),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Subscribe opens a subscription on channel. The caller receives raw
// messages and owns closing the subscription.
func (b *Bus) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return b.client.Subscribe(ctx, channel)
}

// Recognized reports whether channel is a known logical channel.
func Recognized(channel string) bool {
	return recognizedChannels[channel]
}
