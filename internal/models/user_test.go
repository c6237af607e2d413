package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for input, want := range map[string]Role{
		"ADMIN":     RoleAdmin,
		"organizer": RoleOrganizer,
		" attendee ": RoleAttendee,
	} {
		got, err := ParseRole(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "SUPERUSER", "admin2"} {
		_, err := ParseRole(input)
		assert.Error(t, err, input)
	}
}

func TestParseRSVPStatus(t *testing.T) {
	got, err := ParseRSVPStatus("going")
	require.NoError(t, err)
	assert.Equal(t, RSVPGoing, got)

	_, err = ParseRSVPStatus("ATTENDING")
	assert.Error(t, err)
}

func TestUserNeverSerializesPasswordHash(t *testing.T) {
	data, err := json.Marshal(User{ID: "u1", Email: "a@x.com", PasswordHash: "bcrypt-hash", Role: RoleAttendee})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bcrypt-hash")
	assert.NotContains(t, string(data), "password")
}
