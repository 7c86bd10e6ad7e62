package dto

import "time"

type ApplyRequest struct {
	Message string `json:"message" validate:"max=2000"`
}

type ApplicationResponse struct {
	ID                         string    `json:"id"`
	GigID                      string    `json:"gigId"`
	ApplicantUserID            string    `json:"applicantUserId"`
	ApplicantProfileID         string    `json:"applicantProfileId"`
	ApplicantName              string    `json:"applicantName"`
	ApplicantProfilePictureURL string    `json:"applicantProfilePictureUrl"`
	Message                    string    `json:"message"`
	AppliedAt                  time.Time `json:"appliedAt"`
	Status                     string    `json:"status"`
	AgreementID                *string   `json:"agreementId,omitempty"`
}

type HasAppliedResponse struct {
	Applied bool `json:"applied"`
}

// AcceptApplicationResponse returns both halves of the accept workflow.
type AcceptApplicationResponse struct {
	Application *ApplicationResponse `json:"application"`
	Agreement   *AgreementResponse   `json:"agreement"`
}
