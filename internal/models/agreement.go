package models

import "time"

type Agreement struct {
	BaseModel
	GigID             string `gorm:"type:varchar(64);not null;index"`
	GigTitle          string
	PosterProfileID   string `gorm:"type:varchar(64);not null;index"`
	CreativeProfileID string `gorm:"type:varchar(64);not null;index"`
	PosterName        string
	CreativeName      string
	Status            AgreementStatus `gorm:"type:varchar(16);not null;default:'Pending'"`
	Terms             string          `gorm:"type:text;not null"`
	SignedAt          *time.Time
}
