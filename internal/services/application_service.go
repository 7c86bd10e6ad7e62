package services

import (
	"context"
	"sync"
	"time"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, userID, gigID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	HasApplied(ctx context.Context, db *gorm.DB, gigID, userID string) (bool, error)
	ListForGig(ctx context.Context, db *gorm.DB, gigID string) ([]*dto.ApplicationResponse, error)
	// Accept hires the applicant: it creates the agreement and marks the
	// application Accepted as one unit.
	Accept(ctx context.Context, db *gorm.DB, userID, applicationID string) (*dto.AcceptApplicationResponse, error)
	Reject(ctx context.Context, db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error)
}

type applicationService struct {
	appRepo       repositories.ApplicationRepository
	gigRepo       repositories.GigRepository
	profileRepo   repositories.ProfileRepository
	agreementRepo repositories.AgreementRepository
	notifications NotificationService

	// decisions serialises accept and reject so two concurrent accepts
	// cannot both pass the one-hire-per-gig check.
	decisions sync.Mutex
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	gigRepo repositories.GigRepository,
	profileRepo repositories.ProfileRepository,
	agreementRepo repositories.AgreementRepository,
	notifications NotificationService,
) ApplicationService {
	return &applicationService{
		appRepo:       appRepo,
		gigRepo:       gigRepo,
		profileRepo:   profileRepo,
		agreementRepo: agreementRepo,
		notifications: notifications,
	}
}

func (s *applicationService) Apply(ctx context.Context, db *gorm.DB, userID, gigID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.gigRepo.FindByID(tx, gigID); err != nil {
		return nil, handleRepoError(err)
	}

	applicant, err := s.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, handleApplicantError(err)
	}

	applied, err := s.appRepo.ExistsForUser(tx, gigID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if applied {
		return nil, apperrors.ErrAlreadyApplied
	}

	app := &models.Application{
		GigID:                      gigID,
		ApplicantUserID:            userID,
		ApplicantProfileID:         applicant.ID,
		ApplicantName:              applicant.Name,
		ApplicantProfilePictureURL: applicant.ProfilePictureURL,
		Message:                    req.Message,
		AppliedAt:                  time.Now(),
		Status:                     models.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(tx, app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Application submitted", "application_id", app.ID, "gig_id", gigID)
	return buildApplicationResponse(app), nil
}

func (s *applicationService) HasApplied(ctx context.Context, db *gorm.DB, gigID, userID string) (bool, error) {
	applied, err := s.appRepo.ExistsForUser(db.WithContext(ctx), gigID, userID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return applied, nil
}

func (s *applicationService) ListForGig(ctx context.Context, db *gorm.DB, gigID string) ([]*dto.ApplicationResponse, error) {
	db = db.WithContext(ctx)
	if _, err := s.gigRepo.FindByID(db, gigID); err != nil {
		return nil, handleRepoError(err)
	}
	apps, err := s.appRepo.FindByGig(db, gigID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	out := make([]*dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, buildApplicationResponse(&apps[i]))
	}
	return out, nil
}

func (s *applicationService) Accept(ctx context.Context, db *gorm.DB, userID, applicationID string) (*dto.AcceptApplicationResponse, error) {
	s.decisions.Lock()
	defer s.decisions.Unlock()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	app, gig, err := s.loadDecision(tx, userID, applicationID)
	if err != nil {
		return nil, err
	}

	filled, err := s.appRepo.HasAccepted(tx, gig.ID, app.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if filled {
		return nil, apperrors.ErrGigAlreadyFilled
	}

	creative, err := s.profileRepo.FindByID(tx, app.ApplicantProfileID)
	if err != nil {
		return nil, handleApplicantError(err)
	}

	agreement := &models.Agreement{
		GigID:             gig.ID,
		GigTitle:          gig.Title,
		PosterProfileID:   gig.PostedByProfileID,
		CreativeProfileID: creative.ID,
		PosterName:        gig.PosterName,
		CreativeName:      creative.Name,
		Status:            models.AgreementStatusPending,
		Terms:             GenerateTerms(gig, creative),
	}
	if err := s.agreementRepo.Create(tx, agreement); err != nil {
		return nil, apperrors.InternalError(err)
	}

	app.Status = models.ApplicationStatusAccepted
	app.AgreementID = &agreement.ID
	if err := s.appRepo.Update(tx, app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Application accepted",
		"application_id", app.ID,
		"gig_id", gig.ID,
		"agreement_id", agreement.ID,
	)
	if s.notifications != nil {
		s.notifications.AgreementCreated(ctx, db, agreement)
	}

	return &dto.AcceptApplicationResponse{
		Application: buildApplicationResponse(app),
		Agreement:   buildAgreementResponse(agreement),
	}, nil
}

func (s *applicationService) Reject(ctx context.Context, db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error) {
	s.decisions.Lock()
	defer s.decisions.Unlock()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	app, _, err := s.loadDecision(tx, userID, applicationID)
	if err != nil {
		return nil, err
	}

	app.Status = models.ApplicationStatusRejected
	if err := s.appRepo.Update(tx, app); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Application rejected", "application_id", app.ID)
	return buildApplicationResponse(app), nil
}

// loadDecision fetches a Pending application whose gig was posted by userID.
func (s *applicationService) loadDecision(tx *gorm.DB, userID, applicationID string) (*models.Application, *models.Gig, error) {
	app, err := s.appRepo.FindByID(tx, applicationID)
	if err != nil {
		return nil, nil, handleRepoError(err)
	}
	gig, err := s.gigRepo.FindByID(tx, app.GigID)
	if err != nil {
		return nil, nil, handleRepoError(err)
	}

	poster, err := s.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, nil, apperrors.ErrNotGigPoster
		}
		return nil, nil, handleRepoError(err)
	}
	if poster.ID != gig.PostedByProfileID {
		return nil, nil, apperrors.ErrNotGigPoster
	}

	if app.Status != models.ApplicationStatusPending {
		return nil, nil, apperrors.ErrApplicationNotPending
	}
	return app, gig, nil
}
