package dto

import "time"

// ======================
// Request DTOs
// ======================

type PhysicalAttributes struct {
	Height    string `json:"height" validate:"max=32"`
	Weight    string `json:"weight" validate:"max=32"`
	EyeColor  string `json:"eyeColor" validate:"max=32"`
	HairColor string `json:"hairColor" validate:"max=32"`
}

type PortfolioImageInput struct {
	// ID is kept when the client re-sends an existing image so monitoring
	// state stays attached to it.
	ID      string `json:"id,omitempty" validate:"omitempty,max=64"`
	URL     string `json:"url" validate:"required"`
	Caption string `json:"caption" validate:"max=500"`
}

// ContactInfoInput carries the editable contact fields. The email always
// comes from the account.
type ContactInfoInput struct {
	Website string `json:"website" validate:"max=255"`
}

type SaveProfileRequest struct {
	Name              string                `json:"name" validate:"required,max=100"`
	Role              string                `json:"role" validate:"required,is-role"`
	Bio               string                `json:"bio" validate:"max=2000"`
	ProfilePictureURL string                `json:"profilePictureUrl"`
	ContactInfo       *ContactInfoInput     `json:"contactInfo,omitempty"`
	Attributes        *PhysicalAttributes   `json:"attributes,omitempty"`
	Portfolio         []PortfolioImageInput `json:"portfolio" validate:"dive"`
}

// ======================
// Response DTOs
// ======================

type ContactInfo struct {
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
}

type PortfolioImageResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type ProfileResponse struct {
	ID                string                   `json:"id"`
	UserID            string                   `json:"userId"`
	Name              string                   `json:"name"`
	Role              string                   `json:"role"`
	Bio               string                   `json:"bio"`
	ProfilePictureURL string                   `json:"profilePictureUrl"`
	ContactInfo       ContactInfo              `json:"contactInfo"`
	Attributes        *PhysicalAttributes      `json:"attributes,omitempty"`
	Portfolio         []PortfolioImageResponse `json:"portfolio"`
	Reviews           []*ReviewResponse        `json:"reviews"`
	AverageRating     float64                  `json:"averageRating"`
	CreatedAt         time.Time                `json:"createdAt"`
}
