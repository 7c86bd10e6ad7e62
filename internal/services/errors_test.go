package services

import (
	"fmt"
	"testing"

	"gallery_backend/internal/repositories"
	"gallery_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDuplicateKeyMappingPerDomain(t *testing.T) {
	dup := fmt.Errorf("insert profiles: %w", gorm.ErrDuplicatedKey)

	err := handleRepoError(dup)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRecord)
	assert.NotErrorIs(t, err, apperrors.ErrReviewAlreadyExists)

	assert.ErrorIs(t, handleReviewError(dup), apperrors.ErrReviewAlreadyExists)
	assert.ErrorIs(t, handleReviewError(repositories.ErrReviewAlreadyExists), apperrors.ErrReviewAlreadyExists)
	assert.ErrorIs(t, handleAuthError(dup), apperrors.ErrEmailAlreadyExists)
}
