package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"gallery_backend/internal/models"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"
	"gallery_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hiringScene struct {
	poster, creative, rival *models.User
	posterProfile           *models.Profile
	creativeProfile         *models.Profile
	gig                     *models.Gig
}

func newHiringScene(t *testing.T, f *fixture, payment string) *hiringScene {
	t.Helper()
	s := &hiringScene{}
	s.poster, s.posterProfile = helpers.CreateUserWithProfile(t, f.db, "Julian Croft", models.RolePhotographer)
	s.creative, s.creativeProfile = helpers.CreateUserWithProfile(t, f.db, "Aria Chen", models.RoleMakeupArtist)
	s.rival, _ = helpers.CreateUserWithProfile(t, f.db, "Mateo Rossi", models.RoleMakeupArtist)
	s.gig = helpers.CreateGig(t, f.db, s.posterProfile, "Editorial Makeup", models.RoleMakeupArtist, payment)
	return s
}

func apply(t *testing.T, f *fixture, userID, gigID string) *dto.ApplicationResponse {
	t.Helper()
	app, err := f.applications.Apply(context.Background(), f.db, userID, gigID, &dto.ApplyRequest{Message: "Pick me"})
	require.NoError(t, err)
	return app
}

func TestApplicationService_Apply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := newHiringScene(t, f, "$400")

	app := apply(t, f, s.creative.ID, s.gig.ID)
	assert.Equal(t, string(models.ApplicationStatusPending), app.Status)
	assert.Equal(t, s.creativeProfile.ID, app.ApplicantProfileID)
	assert.Equal(t, "Aria Chen", app.ApplicantName)
	assert.Nil(t, app.AgreementID)

	_, err := f.applications.Apply(ctx, f.db, s.creative.ID, s.gig.ID, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	applied, err := f.applications.HasApplied(ctx, f.db, s.gig.ID, s.creative.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = f.applications.HasApplied(ctx, f.db, s.gig.ID, s.rival.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = f.applications.Apply(ctx, f.db, s.creative.ID, "missing", &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrGigNotFound)

	loner := helpers.CreateUser(t, f.db, "No Profile")
	_, err = f.applications.Apply(ctx, f.db, loner.ID, s.gig.ID, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrApplicantProfileNotFound)

	apps, err := f.applications.ListForGig(ctx, f.db, s.gig.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplicationService_AcceptCreatesAgreement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := newHiringScene(t, f, "$400")

	app := apply(t, f, s.creative.ID, s.gig.ID)
	rivalApp := apply(t, f, s.rival.ID, s.gig.ID)

	_, err := f.applications.Accept(ctx, f.db, s.creative.ID, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotGigPoster)

	resp, err := f.applications.Accept(ctx, f.db, s.poster.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ApplicationStatusAccepted), resp.Application.Status)
	require.NotNil(t, resp.Application.AgreementID)
	assert.Equal(t, resp.Agreement.ID, *resp.Application.AgreementID)

	agreement := resp.Agreement
	assert.Equal(t, string(models.AgreementStatusPending), agreement.Status)
	assert.Equal(t, s.gig.ID, agreement.GigID)
	assert.Equal(t, s.posterProfile.ID, agreement.PosterProfileID)
	assert.Equal(t, s.creativeProfile.ID, agreement.CreativeProfileID)
	assert.Nil(t, agreement.SignedAt)
	assert.True(t, strings.HasPrefix(agreement.Terms,
		`This agreement is between Julian Croft (The Client) and Aria Chen (The Creative) for the project titled "Editorial Makeup".`))
	assert.Contains(t, agreement.Terms, "The payment for this project is $400, to be paid to Aria Chen")

	_, err = f.applications.Accept(ctx, f.db, s.poster.ID, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotPending)

	_, err = f.applications.Accept(ctx, f.db, s.poster.ID, rivalApp.ID)
	assert.ErrorIs(t, err, apperrors.ErrGigAlreadyFilled)

	stored, err := f.agreements.GetAgreement(ctx, f.db, agreement.ID)
	require.NoError(t, err)
	assert.Equal(t, agreement.Terms, stored.Terms)

	f.notifications.Wait()
	sent := f.mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{s.creative.Email}, sent[0].To)
}

func TestApplicationService_ConcurrentAcceptsHireOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := newHiringScene(t, f, "TFP")

	ids := []string{
		apply(t, f, s.creative.ID, s.gig.ID).ID,
		apply(t, f, s.rival.ID, s.gig.ID).ID,
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.applications.Accept(ctx, f.db, s.poster.ID, id)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrGigAlreadyFilled)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestApplicationService_Reject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := newHiringScene(t, f, "$400")
	app := apply(t, f, s.creative.ID, s.gig.ID)

	_, err := f.applications.Reject(ctx, f.db, s.rival.ID, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotGigPoster)

	rejected, err := f.applications.Reject(ctx, f.db, s.poster.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ApplicationStatusRejected), rejected.Status)
	assert.Nil(t, rejected.AgreementID)

	_, err = f.applications.Accept(ctx, f.db, s.poster.ID, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotPending)

	_, err = f.applications.Reject(ctx, f.db, s.poster.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}
