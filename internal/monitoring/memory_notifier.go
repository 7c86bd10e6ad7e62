package monitoring

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

type subscriber struct {
	userID string
	ch     chan Event
}

// MemoryNotifier delivers events inside one process.
// A slow subscriber drops events instead of blocking the publisher.
type MemoryNotifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber
	closed bool
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[int]*subscriber)}
}

func (n *MemoryNotifier) Publish(ctx context.Context, event Event) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, sub := range n.subs {
		if sub.userID != event.UserID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return ctx.Err()
}

func (n *MemoryNotifier) Subscribe(ctx context.Context, userID string) (<-chan Event, func(), error) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		ch := make(chan Event)
		close(ch)
		return ch, func() {}, nil
	}
	id := n.nextID
	n.nextID++
	sub := &subscriber{userID: userID, ch: make(chan Event, subscriberBuffer)}
	n.subs[id] = sub
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if _, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(sub.ch)
			}
			n.mu.Unlock()
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return sub.ch, cancel, nil
}

func (n *MemoryNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, sub := range n.subs {
		delete(n.subs, id)
		close(sub.ch)
	}
	n.closed = true
	return nil
}
