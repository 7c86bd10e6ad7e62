package monitoring

import (
	"context"
	"testing"
	"time"

	"gallery_backend/internal/config"
	"gallery_backend/internal/services/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(userID string) Event {
	return Event{
		Type:   EventScanCompleted,
		UserID: userID,
		ScanID: "scan-1",
		Image:  &dto.MonitoredImageResponse{ID: "img-1", UserID: userID, Status: "Monitored"},
	}
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestMemoryNotifierDeliversOnlyToOwner(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()

	mine, cancelMine, err := n.Subscribe(ctx, "user1")
	require.NoError(t, err)
	defer cancelMine()
	other, cancelOther, err := n.Subscribe(ctx, "user2")
	require.NoError(t, err)
	defer cancelOther()

	require.NoError(t, n.Publish(ctx, sampleEvent("user1")))

	ev := receive(t, mine)
	assert.Equal(t, "img-1", ev.Image.ID)

	select {
	case <-other:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestMemoryNotifierCancelClosesChannel(t *testing.T) {
	n := NewMemoryNotifier()
	ctx, cancel := context.WithCancel(context.Background())

	ch, _, err := n.Subscribe(ctx, "user1")
	require.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	// publishing after unsubscribe is harmless
	assert.NoError(t, n.Publish(context.Background(), sampleEvent("user1")))
	assert.NoError(t, n.Close())
}

func TestRedisNotifierRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	n := NewRedisNotifier(client, "")
	defer n.Close()

	ctx := context.Background()
	ch, cancel, err := n.Subscribe(ctx, "user1")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, n.Publish(ctx, sampleEvent("user2")))
	require.NoError(t, n.Publish(ctx, sampleEvent("user1")))

	ev := receive(t, ch)
	assert.Equal(t, "user1", ev.UserID)
	assert.Equal(t, EventScanCompleted, ev.Type)
	assert.Equal(t, "Monitored", ev.Image.Status)
}

func TestRedisNotifierCloseEndsSubscriptions(t *testing.T) {
	mr := miniredis.RunT(t)
	n := NewRedisNotifier(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")

	ch, _, err := n.Subscribe(context.Background(), "user1")
	require.NoError(t, err)

	require.NoError(t, n.Close())
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "expected the subscription channel to close")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription still open after Close")
	}

	assert.NoError(t, n.Close(), "second Close is a no-op")

	late, _, err := n.Subscribe(context.Background(), "user1")
	require.NoError(t, err)
	_, ok := <-late
	assert.False(t, ok)
}

func TestNewNotifierSelectsImplementation(t *testing.T) {
	n, err := NewNotifier(config.MonitoringConfig{Notifier: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryNotifier{}, n)

	mr := miniredis.RunT(t)
	n, err = NewNotifier(config.MonitoringConfig{Notifier: "redis", RedisAddr: mr.Addr(), Channel: "test"})
	require.NoError(t, err)
	assert.IsType(t, &RedisNotifier{}, n)
	require.NoError(t, n.Close())

	_, err = NewNotifier(config.MonitoringConfig{Notifier: "kafka"})
	assert.Error(t, err)
}
