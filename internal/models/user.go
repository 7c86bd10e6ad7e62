package models

import "time"

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
}

// Session is the persisted "current user" of a client. Its ID is the token's jti.
type Session struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
}
