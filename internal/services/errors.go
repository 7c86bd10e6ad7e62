package services

import (
	"errors"

	"gallery_backend/internal/repositories"
	"gallery_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// handleRepoError maps repository sentinels to the AppError a client sees.
// Anything unrecognised is an internal error.
func handleRepoError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound.WithError(err)
	case errors.Is(err, repositories.ErrGigNotFound):
		return apperrors.ErrGigNotFound.WithError(err)
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrApplicationNotFound.WithError(err)
	case errors.Is(err, repositories.ErrAgreementNotFound):
		return apperrors.ErrAgreementNotFound.WithError(err)
	case errors.Is(err, repositories.ErrReviewAlreadyExists):
		return apperrors.ErrReviewAlreadyExists.WithError(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateRecord.WithError(err)
	case errors.Is(err, repositories.ErrMonitoredImageNotFound):
		return apperrors.ErrMonitoredImageNotFound.WithError(err)
	case errors.Is(err, repositories.ErrMatchNotFound):
		return apperrors.ErrMatchNotFound.WithError(err)
	case errors.Is(err, repositories.ErrPortfolioImageNotFound):
		return apperrors.ErrPortfolioImageNotFound.WithError(err)
	case errors.Is(err, repositories.ErrUserNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound(err, "system", "Resource not found")
	}
	return apperrors.InternalError(err)
}

func handleAuthError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrUserNotFound), errors.Is(err, repositories.ErrSessionNotFound):
		return apperrors.ErrInvalidToken
	}
	return handleRepoError(err)
}

// handleApplicantError reports a missing applicant profile distinctly
// from a missing application.
func handleApplicantError(err error) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.ErrApplicantProfileNotFound.WithError(err)
	}
	return handleRepoError(err)
}

func handleRevieweeError(err error) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.ErrRevieweeNotFound.WithError(err)
	}
	return handleRepoError(err)
}

// handleReviewError reports a unique-index hit on the review triple as
// the duplicate review it is.
func handleReviewError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrReviewAlreadyExists.WithError(err)
	}
	return handleRepoError(err)
}
