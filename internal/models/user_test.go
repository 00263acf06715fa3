package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionActiveAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := Session{
		UserID:    1,
		Token:     "tok",
		CreatedAt: created,
		ExpiresAt: created.Add(time.Hour),
	}

	assert.True(t, session.ActiveAt(created))
	assert.True(t, session.ActiveAt(created.Add(59*time.Minute)))
	// Exactly at expiry the session is no longer active.
	assert.False(t, session.ActiveAt(created.Add(time.Hour)))
	assert.False(t, session.ActiveAt(created.Add(2*time.Hour)))
}
