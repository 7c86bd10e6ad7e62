package repositories

import (
	"errors"

	"gallery_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAgreementNotFound = errors.New("agreement not found")

type AgreementRepository interface {
	Create(db *gorm.DB, agreement *models.Agreement) error
	FindByID(db *gorm.DB, id string) (*models.Agreement, error)
	// FindByParticipant returns agreements where the profile is poster or creative, newest first.
	FindByParticipant(db *gorm.DB, profileID string) ([]models.Agreement, error)
	Update(db *gorm.DB, agreement *models.Agreement) error
}

type agreementRepository struct{}

func NewAgreementRepository() AgreementRepository {
	return &agreementRepository{}
}

func (r *agreementRepository) Create(db *gorm.DB, agreement *models.Agreement) error {
	if agreement.Status == "" {
		agreement.Status = models.AgreementStatusPending
	}
	return db.Create(agreement).Error
}

func (r *agreementRepository) FindByID(db *gorm.DB, id string) (*models.Agreement, error) {
	var agreement models.Agreement
	if err := db.First(&agreement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgreementNotFound
		}
		return nil, err
	}
	return &agreement, nil
}

func (r *agreementRepository) FindByParticipant(db *gorm.DB, profileID string) ([]models.Agreement, error) {
	var agreements []models.Agreement
	err := db.Where("poster_profile_id = ? OR creative_profile_id = ?", profileID, profileID).
		Order("created_at DESC").
		Find(&agreements).Error
	return agreements, err
}

func (r *agreementRepository) Update(db *gorm.DB, agreement *models.Agreement) error {
	return db.Save(agreement).Error
}
