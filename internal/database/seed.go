package database

import (
	"fmt"
	"time"

	"gallery_backend/internal/auth"
	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"

	"gorm.io/gorm"
)

// Seed fills every empty collection with the fixed sample content.
// Collections that already hold rows are left alone.
func Seed(db *gorm.DB, defaultPassword string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedUsers(tx, defaultPassword); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.Profile{}, sampleProfiles()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.Gig{}, sampleGigs()); err != nil {
			return err
		}
		return seedIfEmpty(tx, &models.Review{}, sampleReviews())
	})
}

func seedUsers(tx *gorm.DB, password string) error {
	var count int64
	if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	users := sampleUsers()
	for i := range users {
		users[i].PasswordHash = hash
	}
	if err := tx.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	logger.Info("Seeded collection", "collection", "users", "count", len(users))
	return nil
}

func seedIfEmpty[T any](tx *gorm.DB, model interface{}, rows []T) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed %T: %w", model, err)
	}
	logger.Info("Seeded collection", "collection", fmt.Sprintf("%T", model), "count", len(rows))
	return nil
}

func base(id string, createdAt time.Time) models.BaseModel {
	return models.BaseModel{ID: id, CreatedAt: createdAt}
}

var seedEpoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleUsers() []models.User {
	people := []struct{ id, email, name string }{
		{"user1", "elara@test.com", "Elara Vance"},
		{"user2", "liam@test.com", "Liam Sterling"},
		{"user3", "aria@test.com", "Aria Chen"},
		{"user4", "mateo@test.com", "Mateo Rossi"},
		{"user5", "sienna@test.com", "Sienna Miller"},
		{"user6", "julian@test.com", "Julian Croft"},
		{"user7", "chloe@test.com", "Chloe Kim"},
		{"user8", "ren@test.com", "Ren Ishikawa"},
	}
	users := make([]models.User, 0, len(people))
	for i, p := range people {
		users = append(users, models.User{
			BaseModel: base(p.id, seedEpoch.Add(time.Duration(i)*time.Hour)),
			Email:     p.email,
			Name:      p.name,
		})
	}
	return users
}

func sampleProfiles() []models.Profile {
	type seedProfile struct {
		id, userID, name, email, website string
		role                             models.Role
		bio                              string
		attrs                            *models.PhysicalAttributes
	}
	rows := []seedProfile{
		{"1", "user1", "Elara Vance", "elara@test.com", "elaravance.art", models.RolePhotographer,
			"Fine-art photographer chasing natural light and quiet moments.", nil},
		{"2", "user2", "Liam Sterling", "liam@test.com", "", models.RoleModel,
			"Editorial and commercial model based in the city.",
			&models.PhysicalAttributes{Height: "6'1\"", Weight: "175 lbs", EyeColor: "Blue", HairColor: "Brown"}},
		{"3", "user3", "Aria Chen", "aria@test.com", "ariachen.studio", models.RoleMakeupArtist,
			"Bold, editorial makeup for fashion and film.", nil},
		{"4", "user4", "Mateo Rossi", "mateo@test.com", "", models.RoleSetArtist,
			"Set designer building worlds for photo and video.", nil},
		{"5", "user5", "Sienna Miller", "sienna@test.com", "", models.RoleModel,
			"Runway and lifestyle model, comfortable on location.",
			&models.PhysicalAttributes{Height: "5'10\"", Weight: "125 lbs", EyeColor: "Green", HairColor: "Blonde"}},
		{"6", "user6", "Julian Croft", "julian@test.com", "juliancroft.photo", models.RolePhotographer,
			"Street and documentary photographer.", nil},
		{"7", "user7", "Chloe Kim", "chloe@test.com", "", models.RoleArtist,
			"Mixed-media artist working with light and projection.", nil},
		{"8", "user8", "Ren Ishikawa", "ren@test.com", "", models.RoleModel,
			"Fitness and sportswear model.",
			&models.PhysicalAttributes{Height: "5'11\"", Weight: "165 lbs", EyeColor: "Brown", HairColor: "Black"}},
	}

	profiles := make([]models.Profile, 0, len(rows))
	for i, r := range rows {
		p := models.Profile{
			BaseModel:         base(r.id, seedEpoch.Add(time.Duration(i)*time.Hour)),
			UserID:            r.userID,
			Name:              r.name,
			Role:              r.role,
			Bio:               r.bio,
			ProfilePictureURL: fmt.Sprintf("https://picsum.photos/seed/profile%s/400/400", r.id),
			ContactEmail:      r.email,
			ContactWebsite:    r.website,
		}
		// SetRoleAttributes only fails on marshal errors, impossible for this struct
		_ = p.SetRoleAttributes(r.attrs)
		for j := 0; j < 3; j++ {
			p.Portfolio = append(p.Portfolio, models.PortfolioImage{
				ID:       fmt.Sprintf("p%s-%d", r.id, j+1),
				URL:      fmt.Sprintf("https://picsum.photos/seed/portfolio%s%d/800/1000", r.id, j+1),
				Caption:  fmt.Sprintf("%s, work %d", r.name, j+1),
				Position: j,
			})
		}
		profiles = append(profiles, p)
	}
	return profiles
}

func sampleGigs() []models.Gig {
	return []models.Gig{
		{
			BaseModel:               base("gig1", seedEpoch.Add(24*time.Hour)),
			Seq:                     1,
			Title:                   "Golden Hour Portrait Series",
			Description:             "Looking for a model for an outdoor portrait series at sunset.",
			RoleSought:              models.RoleModel,
			Location:                "Riverside Park",
			Date:                    "June 15, 2024",
			Payment:                 "TFP",
			PostedByProfileID:       "1",
			PosterName:              "Elara Vance",
			PosterProfilePictureURL: "https://picsum.photos/seed/profile1/400/400",
		},
		{
			BaseModel:               base("gig2", seedEpoch.Add(48*time.Hour)),
			Seq:                     2,
			Title:                   "Editorial Makeup for Fashion Shoot",
			Description:             "Need a makeup artist for a two-look editorial shoot.",
			RoleSought:              models.RoleMakeupArtist,
			Location:                "Downtown Studio 4",
			Date:                    "July 2, 2024",
			Payment:                 "$400",
			PostedByProfileID:       "6",
			PosterName:              "Julian Croft",
			PosterProfilePictureURL: "https://picsum.photos/seed/profile6/400/400",
		},
		{
			BaseModel:               base("gig3", seedEpoch.Add(72*time.Hour)),
			Seq:                     3,
			Title:                   "Set Build for Music Video",
			Description:             "Surreal living-room set for a one-day music video shoot.",
			RoleSought:              models.RoleSetArtist,
			Location:                "Warehouse District",
			Date:                    "August 10, 2024",
			Payment:                 "$1,200 flat",
			PostedByProfileID:       "7",
			PosterName:              "Chloe Kim",
			PosterProfilePictureURL: "https://picsum.photos/seed/profile7/400/400",
		},
	}
}

func sampleReviews() []models.Review {
	return []models.Review{
		{
			BaseModel:                 base("review1", seedEpoch.Add(96*time.Hour)),
			GigID:                     "gig1",
			ReviewerProfileID:         "1",
			ReviewerName:              "Elara Vance",
			ReviewerProfilePictureURL: "https://picsum.photos/seed/profile1/400/400",
			RevieweeProfileID:         "2",
			Rating:                    5,
			Comment:                   "Liam was a natural in front of the camera. Would shoot again.",
		},
		{
			BaseModel:                 base("review2", seedEpoch.Add(100*time.Hour)),
			GigID:                     "gig1",
			ReviewerProfileID:         "2",
			ReviewerName:              "Liam Sterling",
			ReviewerProfilePictureURL: "https://picsum.photos/seed/profile2/400/400",
			RevieweeProfileID:         "1",
			Rating:                    4,
			Comment:                   "Great direction and beautiful results.",
		},
	}
}
