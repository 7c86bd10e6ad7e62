package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required,is-role"`
	Status string `json:"status" validate:"omitempty,is-match-status"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

func TestValidatePasses(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "a@b.com", Role: "Makeup Artist", Status: "Reviewed", Rating: 5})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "nope", Role: "Director", Status: "Ignored", Rating: 0})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors["role"], "Photographer")
	assert.Contains(t, vErr.Errors["status"], "Reviewed")
	assert.Equal(t, "Must be at least 1", vErr.Errors["rating"])
	assert.Contains(t, vErr.Error(), "field 'email'")
}
