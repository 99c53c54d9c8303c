package validation

import (
	"testing"

	"stagepass/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValidEvent(t *testing.T) {
	event := models.Event{Title: "Jazz Night", Description: "Live jazz", Artist: "42"}
	assert.Nil(t, Check(event))
}

func TestCheckCollectsEveryViolation(t *testing.T) {
	// two missing fields must both be reported in one pass
	event := models.Event{Artist: "42"}
	violations := Check(event)
	require.Len(t, violations, 2)
	assert.Contains(t, violations, "title is a required field")
	assert.Contains(t, violations, "description is a required field")
}

func TestCheckAttendee(t *testing.T) {
	assert.Nil(t, Check(models.Attendee{Username: "alice"}))

	violations := Check(models.Attendee{})
	require.Len(t, violations, 1)
	assert.Equal(t, "username is a required field", violations[0])
}

func TestCheckSignupRules(t *testing.T) {
	req := models.SignupRequest{
		Username:  "bob", // too short
		Name:      "Robert Paulson",
		Email:     "not-an-email",
		Password:  "secret123",
		Birthdate: "1990-01-01",
		Type:      "fan",
	}
	violations := Check(req)
	require.Len(t, violations, 2)
	assert.Contains(t, violations, "username must be at least 5 characters")
	assert.Contains(t, violations, "email must be a valid email address")
}
