package repositories

import (
	"errors"

	"gallery_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByGig(db *gorm.DB, gigID string) ([]models.Application, error)
	ExistsForUser(db *gorm.DB, gigID, userID string) (bool, error)
	// HasAccepted reports whether any application for the gig other than
	// excludeID is already Accepted.
	HasAccepted(db *gorm.DB, gigID, excludeID string) (bool, error)
	Update(db *gorm.DB, app *models.Application) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	return db.Create(app).Error
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByGig(db *gorm.DB, gigID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("gig_id = ?", gigID).Order("applied_at ASC").Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ExistsForUser(db *gorm.DB, gigID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("gig_id = ? AND applicant_user_id = ?", gigID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) HasAccepted(db *gorm.DB, gigID, excludeID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("gig_id = ? AND status = ? AND id <> ?", gigID, models.ApplicationStatusAccepted, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) Update(db *gorm.DB, app *models.Application) error {
	return db.Save(app).Error
}
