package dto

import (
	"time"

	"gallery_backend/internal/models"
)

type UpdateMatchStatusRequest struct {
	Status string `json:"status" validate:"required,is-match-status"`
}

type InfringementMatchResponse struct {
	ID      string    `json:"id"`
	URL     string    `json:"url"`
	Status  string    `json:"status"`
	FoundAt time.Time `json:"foundAt"`
}

type MonitoredImageResponse struct {
	ID       string                      `json:"id"`
	UserID   string                      `json:"userId"`
	Status   string                      `json:"status"`
	LastScan *time.Time                  `json:"lastScan,omitempty"`
	Matches  []InfringementMatchResponse `json:"matches"`
}

func MonitoredImageFromModel(image *models.MonitoredImage) *MonitoredImageResponse {
	resp := &MonitoredImageResponse{
		ID:       image.ID,
		UserID:   image.UserID,
		Status:   string(image.Status),
		LastScan: image.LastScan,
		Matches:  make([]InfringementMatchResponse, 0, len(image.Matches)),
	}
	for _, m := range image.Matches {
		resp.Matches = append(resp.Matches, InfringementMatchResponse{
			ID:      m.ID,
			URL:     m.URL,
			Status:  string(m.Status),
			FoundAt: m.FoundAt,
		})
	}
	return resp
}

// IdleImage is the view of a portfolio image that was never scanned.
func IdleImage(imageID, userID string) *MonitoredImageResponse {
	return &MonitoredImageResponse{
		ID:      imageID,
		UserID:  userID,
		Status:  string(models.MonitoringStatusIdle),
		Matches: []InfringementMatchResponse{},
	}
}
