package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Profile struct {
	BaseModel
	UserID            string `gorm:"uniqueIndex;not null"`
	Name              string `gorm:"not null"`
	Role              Role   `gorm:"type:varchar(32);not null"`
	Bio               string
	ProfilePictureURL string
	ContactEmail      string
	ContactWebsite    string

	// Attributes holds the Model-only physical attributes; NULL for every other role.
	Attributes datatypes.JSON

	Portfolio []PortfolioImage `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// PhysicalAttributes exist only on Model profiles.
type PhysicalAttributes struct {
	Height    string `json:"height"`
	Weight    string `json:"weight"`
	EyeColor  string `json:"eyeColor"`
	HairColor string `json:"hairColor"`
}

type PortfolioImage struct {
	ID        string `gorm:"type:varchar(64);primaryKey"`
	ProfileID string `gorm:"type:varchar(64);not null;index"`
	URL       string `gorm:"not null"`
	Caption   string
	Position  int `gorm:"not null;default:0"`
}

// SetRoleAttributes stores attrs only when the profile is a Model,
// so a non-Model profile can never carry physical attributes.
func (p *Profile) SetRoleAttributes(attrs *PhysicalAttributes) error {
	if p.Role != RoleModel || attrs == nil {
		p.Attributes = nil
		return nil
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	p.Attributes = datatypes.JSON(raw)
	return nil
}

// PhysicalAttributes decodes the Model-only attributes (nil for other roles).
func (p *Profile) PhysicalAttributes() (*PhysicalAttributes, error) {
	if p.Role != RoleModel || len(p.Attributes) == 0 {
		return nil, nil
	}
	var attrs PhysicalAttributes
	if err := json.Unmarshal(p.Attributes, &attrs); err != nil {
		return nil, err
	}
	return &attrs, nil
}

func (i *PortfolioImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
