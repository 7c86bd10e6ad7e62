package database_test

import (
	"testing"

	"gallery_backend/internal/database"
	"gallery_backend/internal/models"
	"gallery_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_Idempotent(t *testing.T) {
	db := helpers.NewTestDB(t)

	require.NoError(t, database.Seed(db, helpers.DefaultPassword))
	require.NoError(t, database.Seed(db, helpers.DefaultPassword))

	counts := map[string]interface{}{
		"users":    &models.User{},
		"profiles": &models.Profile{},
		"gigs":     &models.Gig{},
		"reviews":  &models.Review{},
		"images":   &models.PortfolioImage{},
	}
	want := map[string]int64{"users": 8, "profiles": 8, "gigs": 3, "reviews": 2, "images": 24}
	for name, model := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, want[name], n, name)
	}
}

func TestSeed_SampleProfileShape(t *testing.T) {
	db := helpers.NewSeededTestDB(t)

	var liam models.Profile
	require.NoError(t, db.Preload("Portfolio").First(&liam, "id = ?", "2").Error)
	assert.Equal(t, models.RoleModel, liam.Role)
	assert.Len(t, liam.Portfolio, 3)

	attrs, err := liam.PhysicalAttributes()
	require.NoError(t, err)
	require.NotNil(t, attrs)
	assert.Equal(t, "Blue", attrs.EyeColor)
}
