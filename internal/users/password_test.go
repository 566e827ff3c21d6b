package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStrengthScore(t *testing.T) {
	cases := []struct {
		pw   string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcdefgh", 2},
		{"Abcdefgh", 3},
		{"Abcdefg1", 4},
		{"Abcdef1!", 5},
		{"Ab1!", 4}, // all classes but too short
		{"PASSWORD1", 3},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StrengthScore(tc.pw), "pw=%q", tc.pw)
	}
}

func TestStrengthScoreThreshold(t *testing.T) {
	assert.GreaterOrEqual(t, StrengthScore("Secur3pass"), MinStrengthScore)
	assert.Less(t, StrengthScore("weakpass"), MinStrengthScore)
}

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("Secur3pass!")
	require.NoError(t, err)
	assert.True(t, isHashed(hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Secur3pass!")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}

func TestIsHashed(t *testing.T) {
	assert.False(t, isHashed("plaintext"))
	assert.False(t, isHashed(""))
	assert.False(t, isHashed("$1$legacy"))
	assert.True(t, isHashed("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, isHashed("$2b$12$abcdefghijklmnopqrstuv"))
}
