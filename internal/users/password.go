package users

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// isHashed detects bcrypt output; anything else in the column is treated as
// a legacy plaintext row eligible for lazy upgrade.
func isHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// MinStrengthScore is the registration floor: "Good" or better.
const MinStrengthScore = 4

// StrengthScore counts the classes a password satisfies: lower, upper,
// digit, special (!@#$%^&*()), and length of at least eight.
func StrengthScore(password string) int {
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune("!@#$%^&*()", r):
			hasSpecial = true
		}
	}
	score := 0
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasSpecial, len(password) >= 8} {
		if ok {
			score++
		}
	}
	return score
}
