package workers

import (
	"context"
	"testing"
	"time"

	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWorkerPurgesExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewSessionRepository()

	require.NoError(t, repo.Create(db, &models.Session{UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}))
	live := &models.Session{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(db, live))

	w := NewSessionWorker(db, repo, time.Hour)
	assert.Equal(t, int64(1), w.PurgeOnce(context.Background()))

	_, err := repo.FindActive(db, live.ID, time.Now())
	assert.NoError(t, err)
}
