package dto

import "time"

type AgreementResponse struct {
	ID                string     `json:"id"`
	GigID             string     `json:"gigId"`
	GigTitle          string     `json:"gigTitle"`
	PosterProfileID   string     `json:"posterProfileId"`
	CreativeProfileID string     `json:"creativeProfileId"`
	PosterName        string     `json:"posterName"`
	CreativeName      string     `json:"creativeName"`
	Status            string     `json:"status"`
	Terms             string     `json:"terms"`
	CreatedAt         time.Time  `json:"createdAt"`
	SignedAt          *time.Time `json:"signedAt,omitempty"`
}
