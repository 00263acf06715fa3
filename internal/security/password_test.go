package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Tests use bcrypt.MinCost; the default cost is tuned for production latency,
// not test runtime.

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r!Secret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, string(hash), "Sup3r!Secret")

	assert.True(t, VerifyPassword("Sup3r!Secret", hash))
	assert.False(t, VerifyPassword("Sup3r!Wrong", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordSaltsPerRow(t *testing.T) {
	first, err := HashPassword("Sup3r!Secret", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("Sup3r!Secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ by salt")
	assert.True(t, VerifyPassword("Sup3r!Secret", first))
	assert.True(t, VerifyPassword("Sup3r!Secret", second))
}

func TestHashPasswordRejectsOverlongInput(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'x'
	}
	_, err := HashPassword(string(long), bcrypt.MinCost)
	assert.Error(t, err, "bcrypt caps input at 72 bytes")
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("Sup3r!Secret", []byte("not-a-bcrypt-hash")))
	assert.False(t, VerifyPassword("Sup3r!Secret", nil))
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("Sup3r!Secret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}
