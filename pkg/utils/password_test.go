package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, passwordCost, cost)
}

func TestDummyPasswordHash(t *testing.T) {
	hash := DummyPasswordHash()
	assert.Equal(t, hash, DummyPasswordHash())

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, passwordCost, cost, "same cost as real hashes")
	assert.False(t, CheckPasswordHash("secret1", hash))
}
