package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(now time.Time) *TokenIssuer {
	ti := NewTokenIssuer(JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	ti.now = func() time.Time { return now }
	return ti
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ti := newTestIssuer(now)
	userID := uuid.New()

	token, expiresAt, err := ti.Generate(userID, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	gotID, gotEmail, err := ti.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "alice@example.com", gotEmail)
}

func TestTokenIssuer_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ti := newTestIssuer(now)

	token, _, err := ti.Generate(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	ti.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, _, err = ti.Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	now := time.Now()
	token, _, err := newTestIssuer(now).Generate(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	other := NewTokenIssuer(JWTConfig{Secret: "another-secret", ExpiryHours: 1})
	_, _, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, _, err := newTestIssuer(time.Now()).Parse("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
}
