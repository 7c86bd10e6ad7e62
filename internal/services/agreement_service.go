package services

import (
	"context"
	"time"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AgreementService interface {
	GetAgreement(ctx context.Context, db *gorm.DB, agreementID string) (*dto.AgreementResponse, error)
	// GetAgreementForUser also requires the user's profile to be a party.
	GetAgreementForUser(ctx context.Context, db *gorm.DB, userID, agreementID string) (*dto.AgreementResponse, error)
	// ListForProfile returns agreements where the profile is poster or creative, newest first.
	ListForProfile(ctx context.Context, db *gorm.DB, profileID string) ([]*dto.AgreementResponse, error)
	Sign(ctx context.Context, db *gorm.DB, agreementID, signerProfileID string) (*dto.AgreementResponse, error)
	SignAsUser(ctx context.Context, db *gorm.DB, userID, agreementID string) (*dto.AgreementResponse, error)
}

type agreementService struct {
	agreementRepo repositories.AgreementRepository
	profileRepo   repositories.ProfileRepository
	notifications NotificationService
}

func NewAgreementService(
	agreementRepo repositories.AgreementRepository,
	profileRepo repositories.ProfileRepository,
	notifications NotificationService,
) AgreementService {
	return &agreementService{
		agreementRepo: agreementRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
	}
}

func (s *agreementService) GetAgreement(ctx context.Context, db *gorm.DB, agreementID string) (*dto.AgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByID(db.WithContext(ctx), agreementID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildAgreementResponse(agreement), nil
}

func (s *agreementService) GetAgreementForUser(ctx context.Context, db *gorm.DB, userID, agreementID string) (*dto.AgreementResponse, error) {
	db = db.WithContext(ctx)
	agreement, err := s.agreementRepo.FindByID(db, agreementID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrAgreementAccessDenied
		}
		return nil, handleRepoError(err)
	}
	if profile.ID != agreement.PosterProfileID && profile.ID != agreement.CreativeProfileID {
		return nil, apperrors.ErrAgreementAccessDenied
	}
	return buildAgreementResponse(agreement), nil
}

func (s *agreementService) ListForProfile(ctx context.Context, db *gorm.DB, profileID string) ([]*dto.AgreementResponse, error) {
	agreements, err := s.agreementRepo.FindByParticipant(db.WithContext(ctx), profileID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	out := make([]*dto.AgreementResponse, 0, len(agreements))
	for i := range agreements {
		out = append(out, buildAgreementResponse(&agreements[i]))
	}
	return out, nil
}

func (s *agreementService) Sign(ctx context.Context, db *gorm.DB, agreementID, signerProfileID string) (*dto.AgreementResponse, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	agreement, err := s.agreementRepo.FindByID(tx, agreementID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if agreement.CreativeProfileID != signerProfileID {
		return nil, apperrors.ErrNotHiredCreative
	}
	if agreement.Status == models.AgreementStatusSigned {
		return nil, apperrors.ErrAgreementAlreadySigned
	}

	now := time.Now()
	agreement.Status = models.AgreementStatusSigned
	agreement.SignedAt = &now
	if err := s.agreementRepo.Update(tx, agreement); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Agreement signed", "agreement_id", agreement.ID)
	if s.notifications != nil {
		s.notifications.AgreementSigned(ctx, db, agreement)
	}
	return buildAgreementResponse(agreement), nil
}

func (s *agreementService) SignAsUser(ctx context.Context, db *gorm.DB, userID, agreementID string) (*dto.AgreementResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db.WithContext(ctx), userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			// no profile can never be the hired creative; still report a
			// missing agreement first
			if _, findErr := s.agreementRepo.FindByID(db.WithContext(ctx), agreementID); findErr != nil {
				return nil, handleRepoError(findErr)
			}
			return nil, apperrors.ErrNotHiredCreative
		}
		return nil, handleRepoError(err)
	}
	return s.Sign(ctx, db, agreementID, profile.ID)
}
