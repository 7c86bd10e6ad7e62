package services

import (
	"context"
	"strings"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type GigService interface {
	PostGig(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateGigRequest) (*dto.GigResponse, error)
	// ListGigs returns every gig, most recently posted first.
	ListGigs(ctx context.Context, db *gorm.DB) ([]*dto.GigResponse, error)
	GetGig(ctx context.Context, db *gorm.DB, gigID string) (*dto.GigResponse, error)
	ListGigsByProfile(ctx context.Context, db *gorm.DB, profileID string) ([]*dto.GigResponse, error)
}

type gigService struct {
	gigRepo     repositories.GigRepository
	profileRepo repositories.ProfileRepository
}

func NewGigService(gigRepo repositories.GigRepository, profileRepo repositories.ProfileRepository) GigService {
	return &gigService{gigRepo: gigRepo, profileRepo: profileRepo}
}

func (s *gigService) PostGig(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateGigRequest) (*dto.GigResponse, error) {
	role := models.Role(req.RoleSought)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	poster, err := s.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	gig := &models.Gig{
		Title:                   strings.TrimSpace(req.Title),
		Description:             req.Description,
		RoleSought:              role,
		Location:                req.Location,
		Date:                    req.Date,
		Payment:                 req.Payment,
		PostedByProfileID:       poster.ID,
		PosterName:              poster.Name,
		PosterProfilePictureURL: poster.ProfilePictureURL,
	}
	if err := s.gigRepo.Create(tx, gig); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Gig posted", "gig_id", gig.ID, "poster_profile_id", poster.ID)
	return buildGigResponse(gig), nil
}

func (s *gigService) ListGigs(ctx context.Context, db *gorm.DB) ([]*dto.GigResponse, error) {
	gigs, err := s.gigRepo.FindAll(db.WithContext(ctx))
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildGigResponses(gigs), nil
}

func (s *gigService) GetGig(ctx context.Context, db *gorm.DB, gigID string) (*dto.GigResponse, error) {
	gig, err := s.gigRepo.FindByID(db.WithContext(ctx), gigID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildGigResponse(gig), nil
}

func (s *gigService) ListGigsByProfile(ctx context.Context, db *gorm.DB, profileID string) ([]*dto.GigResponse, error) {
	gigs, err := s.gigRepo.FindByPoster(db.WithContext(ctx), profileID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildGigResponses(gigs), nil
}
