package dto

import "time"

type CreateGigRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	RoleSought  string `json:"roleSought" validate:"required,is-role"`
	Location    string `json:"location" validate:"required,max=200"`
	Date        string `json:"date" validate:"required,max=100"`
	Payment     string `json:"payment" validate:"required,max=200"`
}

type GigResponse struct {
	ID                      string    `json:"id"`
	Title                   string    `json:"title"`
	Description             string    `json:"description"`
	RoleSought              string    `json:"roleSought"`
	Location                string    `json:"location"`
	Date                    string    `json:"date"`
	Payment                 string    `json:"payment"`
	PostedByProfileID       string    `json:"postedByProfileId"`
	PosterName              string    `json:"posterName"`
	PosterProfilePictureURL string    `json:"posterProfilePictureUrl"`
	CreatedAt               time.Time `json:"createdAt"`
}
