package repositories

import (
	"errors"

	"gallery_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewAlreadyExists = errors.New("review already exists for this collaboration")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	// FindByReviewee returns the reviews a profile received, newest first.
	FindByReviewee(db *gorm.DB, profileID string) ([]models.Review, error)
	// FindByReviewees loads reviews for many profiles at once, newest first.
	FindByReviewees(db *gorm.DB, profileIDs []string) ([]models.Review, error)
	FindByGigAndReviewer(db *gorm.DB, gigID, reviewerProfileID string) ([]models.Review, error)
	ExistsForTriple(db *gorm.DB, gigID, reviewerProfileID, revieweeProfileID string) (bool, error)
	Count(db *gorm.DB) (int64, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	exists, err := r.ExistsForTriple(db, review.GigID, review.ReviewerProfileID, review.RevieweeProfileID)
	if err != nil {
		return err
	}
	if exists {
		return ErrReviewAlreadyExists
	}
	return db.Create(review).Error
}

func (r *reviewRepository) FindByReviewee(db *gorm.DB, profileID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("reviewee_profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByReviewees(db *gorm.DB, profileIDs []string) ([]models.Review, error) {
	var reviews []models.Review
	if len(profileIDs) == 0 {
		return reviews, nil
	}
	err := db.Where("reviewee_profile_id IN ?", profileIDs).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByGigAndReviewer(db *gorm.DB, gigID, reviewerProfileID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("gig_id = ? AND reviewer_profile_id = ?", gigID, reviewerProfileID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ExistsForTriple(db *gorm.DB, gigID, reviewerProfileID, revieweeProfileID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("gig_id = ? AND reviewer_profile_id = ? AND reviewee_profile_id = ?", gigID, reviewerProfileID, revieweeProfileID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Count(&count).Error
	return count, err
}
