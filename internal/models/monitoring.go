package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonitoredImage shares its ID with the PortfolioImage it watches.
type MonitoredImage struct {
	ID        string           `gorm:"type:varchar(64);primaryKey"`
	UserID    string           `gorm:"type:varchar(64);not null;index"`
	Status    MonitoringStatus `gorm:"type:varchar(16);not null;index"`
	ScanID    string           `gorm:"type:varchar(64)"`
	LastScan  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Matches []InfringementMatch `gorm:"foreignKey:MonitoredImageID;constraint:OnDelete:CASCADE"`
}

type InfringementMatch struct {
	ID               string      `gorm:"type:varchar(64);primaryKey"`
	MonitoredImageID string      `gorm:"type:varchar(64);not null;index"`
	URL              string      `gorm:"not null"`
	Status           MatchStatus `gorm:"type:varchar(16);not null"`
	FoundAt          time.Time
	Position         int
}

func (m *InfringementMatch) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All returns every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&Profile{},
		&PortfolioImage{},
		&Gig{},
		&Application{},
		&Agreement{},
		&Review{},
		&MonitoredImage{},
		&InfringementMatch{},
	}
}
