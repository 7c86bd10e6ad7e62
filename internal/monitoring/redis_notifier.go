package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gallery_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "gallery:scans"

// RedisNotifier publishes events on a Redis channel so every API
// instance can serve the subscriber.
type RedisNotifier struct {
	client  *redis.Client
	channel string

	mu     sync.Mutex
	subs   map[int]func()
	nextID int
	closed bool
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{client: client, channel: channel, subs: make(map[int]func())}
}

func (n *RedisNotifier) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode scan event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish scan event: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context, userID string) (<-chan Event, func(), error) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		ch := make(chan Event)
		close(ch)
		return ch, func() {}, nil
	}
	n.mu.Unlock()

	pubsub := n.client.Subscribe(ctx, n.channel)
	// Wait for the subscription confirmation so no event published after
	// Subscribe returns is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", n.channel, err)
	}

	out := make(chan Event, subscriberBuffer)
	subCtx, stop := context.WithCancel(ctx)
	var once sync.Once
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	cancel := func() {
		once.Do(func() {
			stop()
			_ = pubsub.Close()
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
	closed := n.closed
	if !closed {
		n.subs[id] = cancel
	}
	n.mu.Unlock()
	if closed {
		// Close ran while we were subscribing
		cancel()
	}

	go func() {
		defer close(out)
		defer cancel()
		messages := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.Warn("Dropping malformed scan event", "channel", n.channel, "error", err)
					continue
				}
				if event.UserID != userID {
					continue
				}
				select {
				case out <- event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return out, cancel, nil
}

// Close ends every open subscription, then the client. Calling it again
// is a no-op.
func (n *RedisNotifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	cancels := make([]func(), 0, len(n.subs))
	for _, cancel := range n.subs {
		cancels = append(cancels, cancel)
	}
	n.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	return n.client.Close()
}
