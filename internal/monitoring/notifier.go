package monitoring

import (
	"context"
	"fmt"

	"gallery_backend/internal/config"
	"gallery_backend/internal/services/dto"

	"github.com/redis/go-redis/v9"
)

const EventScanCompleted = "scan_completed"

// Event is delivered to the owner of a monitored image.
type Event struct {
	Type   string                      `json:"type"`
	UserID string                      `json:"userId"`
	ScanID string                      `json:"scanId"`
	Image  *dto.MonitoredImageResponse `json:"image"`
}

// Notifier fans scan events out to subscribers.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe streams events for userID until ctx is done or the
	// returned cancel func runs. The channel is closed afterwards.
	Subscribe(ctx context.Context, userID string) (<-chan Event, func(), error)
	Close() error
}

// NewNotifier builds the notifier named in cfg.Notifier.
func NewNotifier(cfg config.MonitoringConfig) (Notifier, error) {
	switch cfg.Notifier {
	case "", "memory":
		return NewMemoryNotifier(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis notifier unavailable at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisNotifier(client, cfg.Channel), nil
	default:
		return nil, fmt.Errorf("unsupported notifier: %s", cfg.Notifier)
	}
}
