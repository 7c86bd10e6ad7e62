package repositories_test

import (
	"testing"
	"time"

	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"
	"gallery_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGigRepository_SeqOrdering(t *testing.T) {
	db := helpers.NewSeededTestDB(t)
	repo := repositories.NewGigRepository()

	gig := &models.Gig{
		Title:             "Night Market Shoot",
		Description:       "Handheld night photography.",
		RoleSought:        models.RoleModel,
		Location:          "Old Town",
		Date:              "Sept 1, 2024",
		Payment:           "TFP",
		PostedByProfileID: "1",
		PosterName:        "Elara Vance",
	}
	require.NoError(t, repo.Create(db, gig))
	assert.Equal(t, int64(4), gig.Seq)

	gigs, err := repo.FindAll(db)
	require.NoError(t, err)
	require.Len(t, gigs, 4)
	assert.Equal(t, gig.ID, gigs[0].ID)
	assert.Equal(t, "gig1", gigs[3].ID)

	byPoster, err := repo.FindByPoster(db, "1")
	require.NoError(t, err)
	require.Len(t, byPoster, 2)
	assert.Equal(t, "gig1", byPoster[0].ID)

	_, err = repo.FindByID(db, "missing")
	assert.ErrorIs(t, err, repositories.ErrGigNotFound)
}

func TestGigRepository_SharedSeqOrdersByCreatedAt(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewGigRepository()
	now := time.Now()

	older := &models.Gig{Seq: 7, Title: "Older", RoleSought: models.RoleModel, PostedByProfileID: "1"}
	older.CreatedAt = now.Add(-time.Minute)
	newer := &models.Gig{Seq: 7, Title: "Newer", RoleSought: models.RoleModel, PostedByProfileID: "1"}
	newer.CreatedAt = now
	require.NoError(t, repo.Create(db, older))
	require.NoError(t, repo.Create(db, newer))

	gigs, err := repo.FindAll(db)
	require.NoError(t, err)
	require.Len(t, gigs, 2)
	assert.Equal(t, "Newer", gigs[0].Title)
	assert.Equal(t, "Older", gigs[1].Title)
}

func TestProfileRepository_SaveReplacesPortfolio(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewProfileRepository()
	user := helpers.CreateUser(t, db, "Nora")

	profile := &models.Profile{
		UserID: user.ID,
		Name:   "Nora",
		Role:   models.RoleArtist,
		Portfolio: []models.PortfolioImage{
			{URL: "https://example.com/a.jpg"},
			{URL: "https://example.com/b.jpg"},
		},
	}
	require.NoError(t, repo.Save(db, profile))
	firstID := profile.ID
	require.NotEmpty(t, firstID)

	update := &models.Profile{
		UserID:    user.ID,
		Name:      "Nora K",
		Role:      models.RoleArtist,
		Portfolio: []models.PortfolioImage{{URL: "https://example.com/c.jpg"}},
	}
	require.NoError(t, repo.Save(db, update))
	assert.Equal(t, firstID, update.ID)

	stored, err := repo.FindByUserID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nora K", stored.Name)
	require.Len(t, stored.Portfolio, 1)
	assert.Equal(t, "https://example.com/c.jpg", stored.Portfolio[0].URL)

	_, err = repo.FindPortfolioImage(db, "nope")
	assert.ErrorIs(t, err, repositories.ErrPortfolioImageNotFound)
}

func TestSessionRepository_Expiry(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSessionRepository()
	user := helpers.CreateUser(t, db, "Sam")
	now := time.Now()

	live := &models.Session{UserID: user.ID, ExpiresAt: now.Add(time.Hour)}
	expired := &models.Session{UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.Create(db, live))
	require.NoError(t, repo.Create(db, expired))

	found, err := repo.FindActive(db, live.ID, now)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	_, err = repo.FindActive(db, expired.ID, now)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)

	purged, err := repo.DeleteExpired(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	require.NoError(t, repo.Delete(db, live.ID))
	_, err = repo.FindActive(db, live.ID, now)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestMonitoringRepository_SupersededScan(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewMonitoringRepository()

	image, err := repo.MarkScanning(db, "img-1", "user-1", "scan-a")
	require.NoError(t, err)
	assert.Equal(t, models.MonitoringStatusScanning, image.Status)

	_, err = repo.MarkScanning(db, "img-1", "user-1", "scan-b")
	require.NoError(t, err)

	scanning, err := repo.FindScanning(db)
	require.NoError(t, err)
	assert.Len(t, scanning, 1)

	applied, err := repo.CompleteScan(db, "img-1", "scan-a", time.Now(), []models.InfringementMatch{
		{URL: "https://stale.example.com", Status: models.MatchStatusFound},
	})
	require.NoError(t, err)
	assert.False(t, applied, "stale scan must not overwrite the current one")

	applied, err = repo.CompleteScan(db, "img-1", "scan-b", time.Now(), []models.InfringementMatch{
		{URL: "https://one.example.com", Status: models.MatchStatusFound},
		{URL: "https://two.example.com", Status: models.MatchStatusFound},
	})
	require.NoError(t, err)
	assert.True(t, applied)

	stored, err := repo.FindByID(db, "img-1")
	require.NoError(t, err)
	assert.Equal(t, models.MonitoringStatusMonitored, stored.Status)
	require.NotNil(t, stored.LastScan)
	require.Len(t, stored.Matches, 2)
	assert.Equal(t, "https://one.example.com", stored.Matches[0].URL)

	require.NoError(t, repo.UpdateMatchStatus(db, "img-1", stored.Matches[1].ID, models.MatchStatusReviewed))
	err = repo.UpdateMatchStatus(db, "img-1", "missing", models.MatchStatusReviewed)
	assert.ErrorIs(t, err, repositories.ErrMatchNotFound)

	images, err := repo.FindByUser(db, "user-1")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, models.MatchStatusReviewed, images[0].Matches[1].Status)
}

func TestReviewRepository_ExistsForTriple(t *testing.T) {
	db := helpers.NewSeededTestDB(t)
	repo := repositories.NewReviewRepository()

	exists, err := repo.ExistsForTriple(db, "gig1", "1", "2")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForTriple(db, "gig1", "2", "3")
	require.NoError(t, err)
	assert.False(t, exists)

	reviews, err := repo.FindByReviewees(db, []string{"1", "2"})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
