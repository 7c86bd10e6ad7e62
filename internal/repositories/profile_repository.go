package repositories

import (
	"errors"

	"gallery_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrPortfolioImageNotFound = errors.New("portfolio image not found")
)

type ProfileRepository interface {
	FindAll(db *gorm.DB) ([]models.Profile, error)
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	// Save inserts or updates the profile keyed on UserID and replaces its portfolio.
	Save(db *gorm.DB, profile *models.Profile) error
	FindPortfolioImage(db *gorm.DB, imageID string) (*models.PortfolioImage, error)
	Count(db *gorm.DB) (int64, error)
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func withPortfolio(db *gorm.DB) *gorm.DB {
	return db.Preload("Portfolio", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

func (r *profileRepository) FindAll(db *gorm.DB) ([]models.Profile, error) {
	var profiles []models.Profile
	err := withPortfolio(db).Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := withPortfolio(db).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := withPortfolio(db).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Save expects to run inside a transaction: the profile row and the
// portfolio replacement must land together.
func (r *profileRepository) Save(db *gorm.DB, profile *models.Profile) error {
	var existing models.Profile
	err := db.Select("id", "created_at").Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if err := db.Omit("Portfolio").Save(profile).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Omit("Portfolio").Create(profile).Error; err != nil {
			return err
		}
	default:
		return err
	}

	if err := db.Where("profile_id = ?", profile.ID).Delete(&models.PortfolioImage{}).Error; err != nil {
		return err
	}
	for i := range profile.Portfolio {
		profile.Portfolio[i].ProfileID = profile.ID
		profile.Portfolio[i].Position = i
	}
	if len(profile.Portfolio) == 0 {
		return nil
	}
	return db.Create(&profile.Portfolio).Error
}

func (r *profileRepository) FindPortfolioImage(db *gorm.DB, imageID string) (*models.PortfolioImage, error) {
	var image models.PortfolioImage
	if err := db.First(&image, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *profileRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Profile{}).Count(&count).Error
	return count, err
}
