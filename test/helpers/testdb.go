package helpers

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gallery_backend/internal/auth"
	"gallery_backend/internal/database"
	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultPassword = "password123"

var uniq atomic.Int64

// Unique returns a per-process unique suffix for emails and names.
func Unique() int64 {
	return uniq.Add(1)
}

// NewTestDB opens a private in-memory SQLite database with every table
// migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a new database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// NewSeededTestDB is NewTestDB plus the sample marketplace data.
func NewSeededTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewTestDB(t)
	require.NoError(t, database.Seed(db, DefaultPassword))
	return db
}

// CreateUser inserts a user with a hashed DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Email:        fmt.Sprintf("user_%d@test.com", Unique()),
		Name:         name,
		PasswordHash: hash,
	}
	require.NoError(t, repositories.NewUserRepository().Create(db, user), "create user %s", name)
	return user
}

// CreateProfile inserts a profile for user with the given role and
// portfolio image URLs.
func CreateProfile(t *testing.T, db *gorm.DB, user *models.User, role models.Role, images ...string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:       user.ID,
		Name:         user.Name,
		Role:         role,
		ContactEmail: user.Email,
	}
	for i, url := range images {
		profile.Portfolio = append(profile.Portfolio, models.PortfolioImage{URL: url, Position: i})
	}
	require.NoError(t, db.Create(profile).Error, "create profile for %s", user.Name)
	return profile
}

// CreateUserWithProfile is CreateUser followed by CreateProfile.
func CreateUserWithProfile(t *testing.T, db *gorm.DB, name string, role models.Role, images ...string) (*models.User, *models.Profile) {
	t.Helper()
	user := CreateUser(t, db, name)
	return user, CreateProfile(t, db, user, role, images...)
}

// CreateGig posts a gig as poster.
func CreateGig(t *testing.T, db *gorm.DB, poster *models.Profile, title string, role models.Role, payment string) *models.Gig {
	t.Helper()

	gig := &models.Gig{
		Title:                   title,
		Description:             title + " description",
		RoleSought:              role,
		Location:                "Brooklyn, NY",
		Date:                    "2024-08-15",
		Payment:                 payment,
		PostedByProfileID:       poster.ID,
		PosterName:              poster.Name,
		PosterProfilePictureURL: poster.ProfilePictureURL,
	}
	require.NoError(t, repositories.NewGigRepository().Create(db, gig), "create gig %s", title)
	return gig
}
