package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/monitoring"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services/dto"

	"gorm.io/gorm"
)

var ErrScanQueueFull = errors.New("scan queue is full")

type ScanJob struct {
	ImageID string
	UserID  string
	ScanID  string
}

type ScanWorkerOptions struct {
	BaseDelay time.Duration
	Jitter    time.Duration
	QueueSize int
}

// ScanWorker completes scans started by the monitoring service. Jobs run
// on the worker's own context, so a scan lands even after the HTTP
// caller has gone away.
type ScanWorker struct {
	db       *gorm.DB
	repo     repositories.MonitoringRepository
	scanner  monitoring.Scanner
	notifier monitoring.Notifier
	delay    func() time.Duration

	queue chan ScanJob
	wg    sync.WaitGroup
}

func NewScanWorker(
	db *gorm.DB,
	repo repositories.MonitoringRepository,
	scanner monitoring.Scanner,
	notifier monitoring.Notifier,
	opts ScanWorkerOptions,
) *ScanWorker {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	return &ScanWorker{
		db:       db,
		repo:     repo,
		scanner:  scanner,
		notifier: notifier,
		delay:    delayFor(scanner, opts),
		queue:    make(chan ScanJob, opts.QueueSize),
	}
}

func delayFor(scanner monitoring.Scanner, opts ScanWorkerOptions) func() time.Duration {
	if d, ok := scanner.(interface {
		Delay(base, jitter time.Duration) time.Duration
	}); ok {
		return func() time.Duration { return d.Delay(opts.BaseDelay, opts.Jitter) }
	}
	return func() time.Duration { return opts.BaseDelay }
}

// Enqueue never blocks the caller.
func (w *ScanWorker) Enqueue(job ScanJob) error {
	select {
	case w.queue <- job:
		return nil
	default:
		return ErrScanQueueFull
	}
}

// enqueueWait blocks until the job is queued or ctx is done.
func (w *ScanWorker) enqueueWait(ctx context.Context, job ScanJob) error {
	select {
	case w.queue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start dispatches jobs until ctx is done, then re-queues images left
// Scanning by a previous run.
func (w *ScanWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Scan worker stopped")
				return
			case job := <-w.queue:
				w.wg.Add(1)
				go func(job ScanJob) {
					defer w.wg.Done()
					w.run(ctx, job)
				}(job)
			}
		}
	}()

	w.requeueScanning(ctx)
}

// Wait blocks until every running job has returned.
func (w *ScanWorker) Wait() {
	w.wg.Wait()
}

func (w *ScanWorker) requeueScanning(ctx context.Context) {
	images, err := w.repo.FindScanning(w.db.WithContext(ctx))
	if err != nil {
		logger.WorkerLog("scan", "recover", err)
		return
	}
	requeued := 0
	for _, image := range images {
		job := ScanJob{ImageID: image.ID, UserID: image.UserID, ScanID: image.ScanID}
		if err := w.enqueueWait(ctx, job); err != nil {
			logger.WorkerLog("scan", "recover", err, "image_id", image.ID)
			break
		}
		requeued++
	}
	if len(images) > 0 {
		logger.WorkerLog("scan", "recover", nil, "requeued", requeued, "found", len(images))
	}
}

func (w *ScanWorker) run(ctx context.Context, job ScanJob) {
	timer := time.NewTimer(w.delay())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		// left Scanning; picked up again by requeueScanning on the next start
		return
	case <-timer.C:
	}

	matches, err := w.scanner.Scan(ctx, job.ImageID)
	if err != nil {
		logger.WorkerLog("scan", "scan", err, "image_id", job.ImageID)
		return
	}

	applied := false
	err = w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		applied, txErr = w.repo.CompleteScan(tx, job.ImageID, job.ScanID, time.Now(), matches)
		return txErr
	})
	if err != nil {
		logger.WorkerLog("scan", "complete", err, "image_id", job.ImageID)
		return
	}
	if !applied {
		logger.WorkerLog("scan", "superseded", nil, "image_id", job.ImageID, "scan_id", job.ScanID)
		return
	}

	image, err := w.repo.FindByID(w.db.WithContext(ctx), job.ImageID)
	if err != nil {
		logger.WorkerLog("scan", "reload", err, "image_id", job.ImageID)
		return
	}
	logger.WorkerLog("scan", "complete", nil, "image_id", job.ImageID, "matches", len(image.Matches))

	if w.notifier == nil {
		return
	}
	event := monitoring.Event{
		Type:   monitoring.EventScanCompleted,
		UserID: image.UserID,
		ScanID: job.ScanID,
		Image:  dto.MonitoredImageFromModel(image),
	}
	if err := w.notifier.Publish(ctx, event); err != nil {
		logger.WorkerLog("scan", "publish", err, "image_id", job.ImageID)
	}
}
