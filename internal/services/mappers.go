package services

import (
	"gallery_backend/internal/models"
	"gallery_backend/internal/services/dto"
)

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

func buildGigResponse(gig *models.Gig) *dto.GigResponse {
	return &dto.GigResponse{
		ID:                      gig.ID,
		Title:                   gig.Title,
		Description:             gig.Description,
		RoleSought:              string(gig.RoleSought),
		Location:                gig.Location,
		Date:                    gig.Date,
		Payment:                 gig.Payment,
		PostedByProfileID:       gig.PostedByProfileID,
		PosterName:              gig.PosterName,
		PosterProfilePictureURL: gig.PosterProfilePictureURL,
		CreatedAt:               gig.CreatedAt,
	}
}

func buildGigResponses(gigs []models.Gig) []*dto.GigResponse {
	out := make([]*dto.GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, buildGigResponse(&gigs[i]))
	}
	return out
}

func buildApplicationResponse(app *models.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:                         app.ID,
		GigID:                      app.GigID,
		ApplicantUserID:            app.ApplicantUserID,
		ApplicantProfileID:         app.ApplicantProfileID,
		ApplicantName:              app.ApplicantName,
		ApplicantProfilePictureURL: app.ApplicantProfilePictureURL,
		Message:                    app.Message,
		AppliedAt:                  app.AppliedAt,
		Status:                     string(app.Status),
		AgreementID:                app.AgreementID,
	}
}

func buildAgreementResponse(a *models.Agreement) *dto.AgreementResponse {
	return &dto.AgreementResponse{
		ID:                a.ID,
		GigID:             a.GigID,
		GigTitle:          a.GigTitle,
		PosterProfileID:   a.PosterProfileID,
		CreativeProfileID: a.CreativeProfileID,
		PosterName:        a.PosterName,
		CreativeName:      a.CreativeName,
		Status:            string(a.Status),
		Terms:             a.Terms,
		CreatedAt:         a.CreatedAt,
		SignedAt:          a.SignedAt,
	}
}

func buildReviewResponse(r *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:                        r.ID,
		GigID:                     r.GigID,
		ReviewerProfileID:         r.ReviewerProfileID,
		ReviewerName:              r.ReviewerName,
		ReviewerProfilePictureURL: r.ReviewerProfilePictureURL,
		RevieweeProfileID:         r.RevieweeProfileID,
		Rating:                    r.Rating,
		Comment:                   r.Comment,
		CreatedAt:                 r.CreatedAt,
	}
}

func buildReviewResponses(reviews []models.Review) []*dto.ReviewResponse {
	out := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, buildReviewResponse(&reviews[i]))
	}
	return out
}

// buildProfileResponse assembles the read model: stored fields plus the
// reviews received (newest first, as given) and their mean rating.
func buildProfileResponse(p *models.Profile, reviews []models.Review) (*dto.ProfileResponse, error) {
	attrs, err := p.PhysicalAttributes()
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		Name:              p.Name,
		Role:              string(p.Role),
		Bio:               p.Bio,
		ProfilePictureURL: p.ProfilePictureURL,
		ContactInfo: dto.ContactInfo{
			Email:   p.ContactEmail,
			Website: p.ContactWebsite,
		},
		Portfolio:     make([]dto.PortfolioImageResponse, 0, len(p.Portfolio)),
		Reviews:       buildReviewResponses(reviews),
		AverageRating: AverageRating(reviews),
		CreatedAt:     p.CreatedAt,
	}
	if attrs != nil {
		resp.Attributes = &dto.PhysicalAttributes{
			Height:    attrs.Height,
			Weight:    attrs.Weight,
			EyeColor:  attrs.EyeColor,
			HairColor: attrs.HairColor,
		}
	}
	for _, img := range p.Portfolio {
		resp.Portfolio = append(resp.Portfolio, dto.PortfolioImageResponse{
			ID:      img.ID,
			URL:     img.URL,
			Caption: img.Caption,
		})
	}
	return resp, nil
}

// AverageRating is the arithmetic mean of the ratings, 0 for none.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
