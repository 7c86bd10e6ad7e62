package workers

import (
	"context"
	"time"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/repositories"

	"gorm.io/gorm"
)

type SessionWorker struct {
	db       *gorm.DB
	repo     repositories.SessionRepository
	interval time.Duration
}

func NewSessionWorker(db *gorm.DB, repo repositories.SessionRepository, interval time.Duration) *SessionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionWorker{db: db, repo: repo, interval: interval}
}

func (w *SessionWorker) Start(ctx context.Context) {
	go w.purgeExpired(ctx)
}

// purgeExpired deletes expired sessions on every tick.
func (w *SessionWorker) purgeExpired(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session worker stopped")
			return
		case <-ticker.C:
			w.PurgeOnce(ctx)
		}
	}
}

func (w *SessionWorker) PurgeOnce(ctx context.Context) int64 {
	removed, err := w.repo.DeleteExpired(w.db.WithContext(ctx), time.Now())
	if err != nil {
		logger.WorkerLog("session", "purge", err)
		return 0
	}
	if removed > 0 {
		logger.WorkerLog("session", "purge", nil, "removed", removed)
	}
	return removed
}
