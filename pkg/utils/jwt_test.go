package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := NewSessionToken("secret", userID, "Priya Sharma", "priya@example.com", "user", 7)
	require.NoError(t, err)

	identity, err := VerifySessionToken("secret", token.Token)
	require.NoError(t, err)

	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "Priya Sharma", identity.Name)
	assert.Equal(t, "priya@example.com", identity.Email)
	assert.Equal(t, "user", identity.Role)
	assert.Equal(t, token.SessionID, identity.SessionID)
	assert.WithinDuration(t, token.ExpiresAt, identity.ExpiresAt, time.Second)
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	token, err := NewSessionToken("secret", uuid.New(), "n", "e@example.com", "user", 7)
	require.NoError(t, err)

	_, err = VerifySessionToken("other-secret", token.Token)
	assert.Error(t, err)
}

func TestVerifySessionToken_Expired(t *testing.T) {
	// Negative expiry days produce an already-expired token.
	token, err := NewSessionToken("secret", uuid.New(), "n", "e@example.com", "user", -1)
	require.NoError(t, err)

	_, err = VerifySessionToken("secret", token.Token)
	assert.Error(t, err)
}

func TestVerifySessionToken_Garbage(t *testing.T) {
	_, err := VerifySessionToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestGenerateBookingID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateBookingID()
		assert.Regexp(t, `^BK[A-HJ-NP-Z2-9]{8}$`, id)
		seen[id] = true
	}
	// 1000 draws from a 32^8 space must not collide.
	assert.Len(t, seen, 1000)
}
