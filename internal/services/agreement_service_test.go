package services_test

import (
	"context"
	"testing"
	"time"

	"gallery_backend/internal/models"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hire(t *testing.T, f *fixture, s *hiringScene) *dto.AgreementResponse {
	t.Helper()
	app := apply(t, f, s.creative.ID, s.gig.ID)
	resp, err := f.applications.Accept(context.Background(), f.db, s.poster.ID, app.ID)
	require.NoError(t, err)
	return resp.Agreement
}

func TestAgreementService_Sign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := newHiringScene(t, f, "TFP")
	agreement := hire(t, f, s)

	assert.Contains(t, agreement.Terms, "This is a TFP (Time for Prints) collaboration. Aria Chen will receive")

	_, err := f.agreements.SignAsUser(ctx, f.db, s.poster.ID, agreement.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotHiredCreative)

	signed, err := f.agreements.SignAsUser(ctx, f.db, s.creative.ID, agreement.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.AgreementStatusSigned), signed.Status)
	require.NotNil(t, signed.SignedAt)

	_, err = f.agreements.Sign(ctx, f.db, agreement.ID, s.creativeProfile.ID)
	assert.ErrorIs(t, err, apperrors.ErrAgreementAlreadySigned)

	stored, err := f.agreements.GetAgreement(ctx, f.db, agreement.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SignedAt)
	assert.WithinDuration(t, *signed.SignedAt, *stored.SignedAt, time.Millisecond, "signedAt is written once")
	assert.Equal(t, agreement.Terms, stored.Terms)

	_, err = f.agreements.Sign(ctx, f.db, "missing", s.creativeProfile.ID)
	assert.ErrorIs(t, err, apperrors.ErrAgreementNotFound)

	f.notifications.Wait()
	sent := f.mail.Sent()
	require.Len(t, sent, 2)
	assert.ElementsMatch(t, [][]string{{s.creative.Email}, {s.poster.Email}}, [][]string{sent[0].To, sent[1].To})
}

func TestAgreementService_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := newHiringScene(t, f, "$400")
	agreement := hire(t, f, s)

	for _, user := range []*models.User{s.poster, s.creative} {
		got, err := f.agreements.GetAgreementForUser(ctx, f.db, user.ID, agreement.ID)
		require.NoError(t, err)
		assert.Equal(t, agreement.ID, got.ID)
	}

	_, err := f.agreements.GetAgreementForUser(ctx, f.db, s.rival.ID, agreement.ID)
	assert.ErrorIs(t, err, apperrors.ErrAgreementAccessDenied)

	for _, profileID := range []string{s.posterProfile.ID, s.creativeProfile.ID} {
		list, err := f.agreements.ListForProfile(ctx, f.db, profileID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, agreement.ID, list[0].ID)
	}
}
