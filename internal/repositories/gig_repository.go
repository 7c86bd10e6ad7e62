package repositories

import (
	"errors"

	"gallery_backend/internal/models"

	"gorm.io/gorm"
)

var ErrGigNotFound = errors.New("gig not found")

type GigRepository interface {
	Create(db *gorm.DB, gig *models.Gig) error
	// FindAll returns gigs newest first.
	FindAll(db *gorm.DB) ([]models.Gig, error)
	FindByID(db *gorm.DB, id string) (*models.Gig, error)
	FindByPoster(db *gorm.DB, profileID string) ([]models.Gig, error)
	Count(db *gorm.DB) (int64, error)
}

type gigRepository struct{}

func NewGigRepository() GigRepository {
	return &gigRepository{}
}

func (r *gigRepository) Create(db *gorm.DB, gig *models.Gig) error {
	if gig.Seq == 0 {
		var maxSeq int64
		if err := db.Model(&models.Gig{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return err
		}
		gig.Seq = maxSeq + 1
	}
	return db.Create(gig).Error
}

func (r *gigRepository) FindAll(db *gorm.DB) ([]models.Gig, error) {
	var gigs []models.Gig
	// concurrent posts can share a seq
	err := db.Order("seq DESC").Order("created_at DESC").Find(&gigs).Error
	return gigs, err
}

func (r *gigRepository) FindByID(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	if err := db.First(&gig, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *gigRepository) FindByPoster(db *gorm.DB, profileID string) ([]models.Gig, error) {
	var gigs []models.Gig
	err := db.Where("posted_by_profile_id = ?", profileID).Order("seq ASC").Order("created_at ASC").Find(&gigs).Error
	return gigs, err
}

func (r *gigRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Gig{}).Count(&count).Error
	return count, err
}
