package models

// Gig is immutable once posted. Poster fields are a snapshot taken at post time.
type Gig struct {
	BaseModel
	// Seq is the posting order, assigned by the repository.
	Seq                     int64  `gorm:"not null;default:0;index"`
	Title                   string `gorm:"not null"`
	Description             string
	RoleSought              Role `gorm:"type:varchar(32);not null"`
	Location                string
	Date                    string
	Payment                 string
	PostedByProfileID       string `gorm:"type:varchar(64);not null;index"`
	PosterName              string
	PosterProfilePictureURL string
}
