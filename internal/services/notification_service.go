package services

import (
	"context"
	"sync"

	"gallery_backend/internal/email"
	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"

	"gorm.io/gorm"
)

// NotificationService emails agreement participants. Delivery is best
// effort: it runs after the workflow committed and failures are only logged.
type NotificationService interface {
	AgreementCreated(ctx context.Context, db *gorm.DB, agreement *models.Agreement)
	AgreementSigned(ctx context.Context, db *gorm.DB, agreement *models.Agreement)
	// Wait blocks until queued deliveries have finished.
	Wait()
}

type notificationService struct {
	provider    email.Provider
	profileRepo repositories.ProfileRepository
	wg          sync.WaitGroup
}

func NewNotificationService(provider email.Provider, profileRepo repositories.ProfileRepository) NotificationService {
	return &notificationService{provider: provider, profileRepo: profileRepo}
}

func (s *notificationService) AgreementCreated(ctx context.Context, db *gorm.DB, agreement *models.Agreement) {
	s.deliver(ctx, db, agreement.CreativeProfileID, "Your agreement is ready to sign", email.TemplateAgreementCreated, agreement)
}

func (s *notificationService) AgreementSigned(ctx context.Context, db *gorm.DB, agreement *models.Agreement) {
	s.deliver(ctx, db, agreement.PosterProfileID, "Your agreement was signed", email.TemplateAgreementSigned, agreement)
}

func (s *notificationService) Wait() {
	s.wg.Wait()
}

func (s *notificationService) deliver(ctx context.Context, db *gorm.DB, profileID, subject, templateName string, agreement *models.Agreement) {
	if s.provider == nil {
		return
	}

	// The request context ends with the response; delivery must not.
	ctx = context.WithoutCancel(ctx)
	data := email.TemplateData{
		"PosterName":   agreement.PosterName,
		"CreativeName": agreement.CreativeName,
		"GigTitle":     agreement.GigTitle,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		recipient, err := s.profileRepo.FindByID(db.WithContext(ctx), profileID)
		if err != nil {
			logger.CtxWithError(ctx, "Notification recipient lookup failed", err, "profile_id", profileID)
			return
		}
		if recipient.ContactEmail == "" {
			return
		}
		if err := s.provider.SendTemplate([]string{recipient.ContactEmail}, subject, templateName, data); err != nil {
			logger.CtxWithError(ctx, "Agreement notification failed", err,
				"agreement_id", agreement.ID, "template", templateName)
		}
	}()
}
