package services

import (
	"context"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"
	"gallery_backend/internal/monitoring"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services/dto"
	"gallery_backend/internal/workers"
	"gallery_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScanQueue accepts scans for asynchronous completion.
type ScanQueue interface {
	Enqueue(job workers.ScanJob) error
}

type MonitoringService interface {
	// StartMonitoring marks the image Scanning and returns at once; the
	// scan result arrives later through the notifier.
	StartMonitoring(ctx context.Context, db *gorm.DB, userID, imageID string) (*dto.MonitoredImageResponse, error)
	ListMonitoredImages(ctx context.Context, db *gorm.DB, userID string) ([]*dto.MonitoredImageResponse, error)
	GetMonitoredImage(ctx context.Context, db *gorm.DB, userID, imageID string) (*dto.MonitoredImageResponse, error)
	UpdateMatchStatus(ctx context.Context, db *gorm.DB, userID, imageID, matchID, status string) (*dto.MonitoredImageResponse, error)
	Subscribe(ctx context.Context, userID string) (<-chan monitoring.Event, func(), error)
}

type monitoringService struct {
	monitoringRepo repositories.MonitoringRepository
	profileRepo    repositories.ProfileRepository
	queue          ScanQueue
	notifier       monitoring.Notifier
}

func NewMonitoringService(
	monitoringRepo repositories.MonitoringRepository,
	profileRepo repositories.ProfileRepository,
	queue ScanQueue,
	notifier monitoring.Notifier,
) MonitoringService {
	return &monitoringService{
		monitoringRepo: monitoringRepo,
		profileRepo:    profileRepo,
		queue:          queue,
		notifier:       notifier,
	}
}

func (s *monitoringService) StartMonitoring(ctx context.Context, db *gorm.DB, userID, imageID string) (*dto.MonitoredImageResponse, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.checkPortfolioOwner(tx, userID, imageID); err != nil {
		return nil, err
	}

	scanID := uuid.NewString()
	image, err := s.monitoringRepo.MarkScanning(tx, imageID, userID, scanID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.queue.Enqueue(workers.ScanJob{ImageID: imageID, UserID: userID, ScanID: scanID}); err != nil {
		// the image stays Scanning and is picked up when the worker restarts
		logger.CtxWarn(ctx, "Scan not queued", "image_id", imageID, "error", err.Error())
	}

	logger.CtxInfo(ctx, "Monitoring started", "image_id", imageID, "scan_id", scanID)
	return dto.MonitoredImageFromModel(image), nil
}

func (s *monitoringService) ListMonitoredImages(ctx context.Context, db *gorm.DB, userID string) ([]*dto.MonitoredImageResponse, error) {
	images, err := s.monitoringRepo.FindByUser(db.WithContext(ctx), userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	out := make([]*dto.MonitoredImageResponse, 0, len(images))
	for i := range images {
		out = append(out, dto.MonitoredImageFromModel(&images[i]))
	}
	return out, nil
}

func (s *monitoringService) GetMonitoredImage(ctx context.Context, db *gorm.DB, userID, imageID string) (*dto.MonitoredImageResponse, error) {
	db = db.WithContext(ctx)
	image, err := s.monitoringRepo.FindByID(db, imageID)
	if err == nil {
		if image.UserID != userID {
			return nil, apperrors.ErrMonitoringAccessDenied
		}
		return dto.MonitoredImageFromModel(image), nil
	}
	if !apperrors.Is(err, repositories.ErrMonitoredImageNotFound) {
		return nil, handleRepoError(err)
	}

	// never scanned: report Idle for the caller's own portfolio images
	if err := s.checkPortfolioOwner(db, userID, imageID); err != nil {
		return nil, apperrors.ErrMonitoredImageNotFound
	}
	return dto.IdleImage(imageID, userID), nil
}

func (s *monitoringService) UpdateMatchStatus(ctx context.Context, db *gorm.DB, userID, imageID, matchID, status string) (*dto.MonitoredImageResponse, error) {
	matchStatus := models.MatchStatus(status)
	if !matchStatus.Valid() {
		return nil, apperrors.ErrInvalidMatchStatus
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	image, err := s.monitoringRepo.FindByID(tx, imageID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if image.UserID != userID {
		return nil, apperrors.ErrMonitoringAccessDenied
	}

	if err := s.monitoringRepo.UpdateMatchStatus(tx, imageID, matchID, matchStatus); err != nil {
		return nil, handleRepoError(err)
	}

	updated, err := s.monitoringRepo.FindByID(tx, imageID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.MonitoredImageFromModel(updated), nil
}

func (s *monitoringService) Subscribe(ctx context.Context, userID string) (<-chan monitoring.Event, func(), error) {
	ch, cancel, err := s.notifier.Subscribe(ctx, userID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return ch, cancel, nil
}

func (s *monitoringService) checkPortfolioOwner(db *gorm.DB, userID, imageID string) error {
	img, err := s.profileRepo.FindPortfolioImage(db, imageID)
	if err != nil {
		return handleRepoError(err)
	}
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrPortfolioImageNotFound
		}
		return handleRepoError(err)
	}
	if img.ProfileID != profile.ID {
		return apperrors.ErrPortfolioImageNotFound
	}
	return nil
}
