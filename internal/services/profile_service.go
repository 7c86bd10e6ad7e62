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

type ProfileService interface {
	// SaveProfile creates or replaces the caller's profile. A user never
	// owns more than one profile.
	SaveProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.SaveProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, db *gorm.DB, profileID string) (*dto.ProfileResponse, error)
	GetProfileByUserID(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	ListProfiles(ctx context.Context, db *gorm.DB) ([]*dto.ProfileResponse, error)
}

type profileService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	reviewRepo  repositories.ReviewRepository
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	reviewRepo repositories.ReviewRepository,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *profileService) SaveProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.SaveProfileRequest) (*dto.ProfileResponse, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleAuthError(err)
	}

	// image ids survive a save only if they were already ours, so
	// monitoring state stays attached and foreign ids cannot be claimed
	owned := map[string]bool{}
	if existing, err := s.profileRepo.FindByUserID(tx, userID); err == nil {
		for _, img := range existing.Portfolio {
			owned[img.ID] = true
		}
	} else if !apperrors.Is(err, repositories.ErrProfileNotFound) {
		return nil, handleRepoError(err)
	}

	profile := &models.Profile{
		UserID:            user.ID,
		Name:              strings.TrimSpace(req.Name),
		Role:              role,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		ContactEmail:      user.Email,
	}
	if req.ContactInfo != nil {
		profile.ContactWebsite = strings.TrimSpace(req.ContactInfo.Website)
	}

	var attrs *models.PhysicalAttributes
	if req.Attributes != nil {
		attrs = &models.PhysicalAttributes{
			Height:    req.Attributes.Height,
			Weight:    req.Attributes.Weight,
			EyeColor:  req.Attributes.EyeColor,
			HairColor: req.Attributes.HairColor,
		}
	}
	if err := profile.SetRoleAttributes(attrs); err != nil {
		return nil, apperrors.InternalError(err)
	}

	seen := map[string]bool{}
	for _, in := range req.Portfolio {
		img := models.PortfolioImage{URL: in.URL, Caption: in.Caption}
		if owned[in.ID] && !seen[in.ID] {
			img.ID = in.ID
			seen[in.ID] = true
		}
		profile.Portfolio = append(profile.Portfolio, img)
	}

	if err := s.profileRepo.Save(tx, profile); err != nil {
		return nil, handleRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Profile saved", "profile_id", profile.ID, "role", profile.Role)
	return s.GetProfileByUserID(ctx, db, userID)
}

func (s *profileService) GetProfile(ctx context.Context, db *gorm.DB, profileID string) (*dto.ProfileResponse, error) {
	db = db.WithContext(ctx)
	profile, err := s.profileRepo.FindByID(db, profileID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return s.assemble(db, profile)
}

func (s *profileService) GetProfileByUserID(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	db = db.WithContext(ctx)
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return s.assemble(db, profile)
}

func (s *profileService) ListProfiles(ctx context.Context, db *gorm.DB) ([]*dto.ProfileResponse, error) {
	db = db.WithContext(ctx)
	profiles, err := s.profileRepo.FindAll(db)
	if err != nil {
		return nil, handleRepoError(err)
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	reviews, err := s.reviewRepo.FindByReviewees(db, ids)
	if err != nil {
		return nil, handleRepoError(err)
	}
	byReviewee := make(map[string][]models.Review, len(profiles))
	for _, r := range reviews {
		byReviewee[r.RevieweeProfileID] = append(byReviewee[r.RevieweeProfileID], r)
	}

	out := make([]*dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp, err := buildProfileResponse(&profiles[i], byReviewee[profiles[i].ID])
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *profileService) assemble(db *gorm.DB, profile *models.Profile) (*dto.ProfileResponse, error) {
	reviews, err := s.reviewRepo.FindByReviewee(db, profile.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	resp, err := buildProfileResponse(profile, reviews)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}
