package models

import "time"

type Application struct {
	BaseModel
	GigID                      string `gorm:"type:varchar(64);not null;index"`
	ApplicantUserID            string `gorm:"type:varchar(64);not null;index"`
	ApplicantProfileID         string `gorm:"type:varchar(64);not null"`
	ApplicantName              string
	ApplicantProfilePictureURL string
	Message                    string
	AppliedAt                  time.Time
	Status                     ApplicationStatus `gorm:"type:varchar(16);not null;default:'Pending'"`
	AgreementID                *string           `gorm:"type:varchar(64)"`
}
