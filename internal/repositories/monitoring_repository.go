package repositories

import (
	"errors"
	"time"

	"gallery_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMonitoredImageNotFound = errors.New("monitored image not found")
	ErrMatchNotFound          = errors.New("infringement match not found")
)

type MonitoringRepository interface {
	FindByID(db *gorm.DB, id string) (*models.MonitoredImage, error)
	FindByUser(db *gorm.DB, userID string) ([]models.MonitoredImage, error)
	// FindScanning lists images whose scan never completed.
	FindScanning(db *gorm.DB) ([]models.MonitoredImage, error)
	// MarkScanning upserts the image into Scanning with a fresh scan id.
	MarkScanning(db *gorm.DB, imageID, userID, scanID string) (*models.MonitoredImage, error)
	// CompleteScan applies a scan result if scanID is still the image's current scan.
	// It returns false when a newer scan superseded this one.
	CompleteScan(db *gorm.DB, imageID, scanID string, scannedAt time.Time, matches []models.InfringementMatch) (bool, error)
	UpdateMatchStatus(db *gorm.DB, imageID, matchID string, status models.MatchStatus) error
}

type monitoringRepository struct{}

func NewMonitoringRepository() MonitoringRepository {
	return &monitoringRepository{}
}

func withMatches(db *gorm.DB) *gorm.DB {
	return db.Preload("Matches", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

func (r *monitoringRepository) FindByID(db *gorm.DB, id string) (*models.MonitoredImage, error) {
	var image models.MonitoredImage
	if err := withMatches(db).First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMonitoredImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *monitoringRepository) FindByUser(db *gorm.DB, userID string) ([]models.MonitoredImage, error) {
	var images []models.MonitoredImage
	err := withMatches(db).Where("user_id = ?", userID).Order("created_at ASC").Find(&images).Error
	return images, err
}

func (r *monitoringRepository) FindScanning(db *gorm.DB) ([]models.MonitoredImage, error) {
	var images []models.MonitoredImage
	err := db.Where("status = ?", models.MonitoringStatusScanning).Find(&images).Error
	return images, err
}

func (r *monitoringRepository) MarkScanning(db *gorm.DB, imageID, userID, scanID string) (*models.MonitoredImage, error) {
	image, err := r.FindByID(db, imageID)
	switch {
	case err == nil:
		image.Status = models.MonitoringStatusScanning
		image.ScanID = scanID
		if err := db.Model(&models.MonitoredImage{}).Where("id = ?", imageID).Updates(map[string]interface{}{
			"status":     models.MonitoringStatusScanning,
			"scan_id":    scanID,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return nil, err
		}
		return image, nil
	case errors.Is(err, ErrMonitoredImageNotFound):
		image = &models.MonitoredImage{
			ID:     imageID,
			UserID: userID,
			Status: models.MonitoringStatusScanning,
			ScanID: scanID,
		}
		if err := db.Create(image).Error; err != nil {
			return nil, err
		}
		image.Matches = []models.InfringementMatch{}
		return image, nil
	default:
		return nil, err
	}
}

func (r *monitoringRepository) CompleteScan(db *gorm.DB, imageID, scanID string, scannedAt time.Time, matches []models.InfringementMatch) (bool, error) {
	result := db.Model(&models.MonitoredImage{}).
		Where("id = ? AND scan_id = ?", imageID, scanID).
		Updates(map[string]interface{}{
			"status":     models.MonitoringStatusMonitored,
			"last_scan":  scannedAt,
			"updated_at": scannedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := db.Where("monitored_image_id = ?", imageID).Delete(&models.InfringementMatch{}).Error; err != nil {
		return false, err
	}
	if len(matches) == 0 {
		return true, nil
	}
	for i := range matches {
		matches[i].MonitoredImageID = imageID
		matches[i].Position = i
	}
	if err := db.Create(&matches).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *monitoringRepository) UpdateMatchStatus(db *gorm.DB, imageID, matchID string, status models.MatchStatus) error {
	var match models.InfringementMatch
	err := db.Where("id = ? AND monitored_image_id = ?", matchID, imageID).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	return db.Model(&match).Update("status", status).Error
}
