package services

import (
	"context"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// SubmitReview stores one review per (gig, reviewer, reviewee).
	SubmitReview(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByGigAndReviewer(ctx context.Context, db *gorm.DB, gigID, reviewerProfileID string) ([]*dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	gigRepo     repositories.GigRepository
	profileRepo repositories.ProfileRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	gigRepo repositories.GigRepository,
	profileRepo repositories.ProfileRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		gigRepo:     gigRepo,
		profileRepo: profileRepo,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	reviewer, err := s.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if _, err := s.gigRepo.FindByID(tx, req.GigID); err != nil {
		return nil, handleRepoError(err)
	}
	if _, err := s.profileRepo.FindByID(tx, req.RevieweeProfileID); err != nil {
		return nil, handleRevieweeError(err)
	}

	review := &models.Review{
		GigID:                     req.GigID,
		ReviewerProfileID:         reviewer.ID,
		ReviewerName:              reviewer.Name,
		ReviewerProfilePictureURL: reviewer.ProfilePictureURL,
		RevieweeProfileID:         req.RevieweeProfileID,
		Rating:                    req.Rating,
		Comment:                   req.Comment,
	}
	if err := s.reviewRepo.Create(tx, review); err != nil {
		return nil, handleReviewError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleReviewError(err)
	}

	logger.CtxInfo(ctx, "Review submitted",
		"review_id", review.ID,
		"gig_id", review.GigID,
		"reviewee_profile_id", review.RevieweeProfileID,
	)
	return buildReviewResponse(review), nil
}

func (s *reviewService) ListByGigAndReviewer(ctx context.Context, db *gorm.DB, gigID, reviewerProfileID string) ([]*dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByGigAndReviewer(db.WithContext(ctx), gigID, reviewerProfileID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildReviewResponses(reviews), nil
}
