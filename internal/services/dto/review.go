package dto

import "time"

type CreateReviewRequest struct {
	GigID             string `json:"gigId" validate:"required"`
	RevieweeProfileID string `json:"revieweeProfileId" validate:"required"`
	// Rating is checked by the service so an absent rating reports the
	// review-specific message.
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewResponse struct {
	ID                        string    `json:"id"`
	GigID                     string    `json:"gigId"`
	ReviewerProfileID         string    `json:"reviewerProfileId"`
	ReviewerName              string    `json:"reviewerName"`
	ReviewerProfilePictureURL string    `json:"reviewerProfilePictureUrl"`
	RevieweeProfileID         string    `json:"revieweeProfileId"`
	Rating                    int       `json:"rating"`
	Comment                   string    `json:"comment"`
	CreatedAt                 time.Time `json:"createdAt"`
}
