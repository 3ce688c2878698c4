package pkg

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const TokenHashCost = 12

var ErrEmptyToken = errors.New("empty token")

// HashToken returns the bcrypt hash of an API token, as expected in GYMLOG_API_TOKEN_HASH.
func HashToken(token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), TokenHashCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return BytesToString(hash), nil
}

func TokenMatchesHash(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
