package services_test

import (
	"context"
	"testing"

	"gallery_backend/internal/models"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"
	"gallery_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postGig(t *testing.T, f *fixture, userID, title string) *dto.GigResponse {
	t.Helper()
	gig, err := f.gigs.PostGig(context.Background(), f.db, userID, &dto.CreateGigRequest{
		Title:       title,
		Description: "A shoot.",
		RoleSought:  string(models.RoleModel),
		Location:    "Studio 4",
		Date:        "June 15, 2024",
		Payment:     "TFP",
	})
	require.NoError(t, err)
	return gig
}

func TestGigService_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, profile := helpers.CreateUserWithProfile(t, f.db, "Elara Vance", models.RolePhotographer)

	first := postGig(t, f, user.ID, "First")
	second := postGig(t, f, user.ID, "Second")
	third := postGig(t, f, user.ID, "Third")

	assert.Equal(t, profile.ID, first.PostedByProfileID)
	assert.Equal(t, "Elara Vance", first.PosterName)

	gigs, err := f.gigs.ListGigs(ctx, f.db)
	require.NoError(t, err)
	require.Len(t, gigs, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{gigs[0].ID, gigs[1].ID, gigs[2].ID})

	mine, err := f.gigs.ListGigsByProfile(ctx, f.db, profile.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	got, err := f.gigs.GetGig(ctx, f.db, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)

	_, err = f.gigs.GetGig(ctx, f.db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrGigNotFound)
}

func TestGigService_PostRequiresProfile(t *testing.T) {
	f := newFixture(t)
	user := helpers.CreateUser(t, f.db, "No Profile")

	_, err := f.gigs.PostGig(context.Background(), f.db, user.ID, &dto.CreateGigRequest{
		Title: "x", Description: "x", RoleSought: string(models.RoleModel), Location: "x", Date: "x", Payment: "x",
	})
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}
