package models

// Review is unique per (gig, reviewer, reviewee).
type Review struct {
	BaseModel
	GigID                     string `gorm:"type:varchar(64);not null;uniqueIndex:idx_review_triple"`
	ReviewerProfileID         string `gorm:"type:varchar(64);not null;uniqueIndex:idx_review_triple"`
	ReviewerName              string
	ReviewerProfilePictureURL string
	RevieweeProfileID         string `gorm:"type:varchar(64);not null;uniqueIndex:idx_review_triple;index"`
	Rating                    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment                   string
}
