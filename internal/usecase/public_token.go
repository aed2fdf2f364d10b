package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// publicTokenBytes yields a 12 character URL-safe token.
const publicTokenBytes = 9

// maxTokenAttempts bounds retries when a generated share link or approval
// token collides with an existing one.
const maxTokenAttempts = 3

var ErrTokenExhausted = errors.New("could not allocate a unique public token")

// newPublicToken returns an unguessable token used in customer-facing URLs.
func newPublicToken() (string, error) {
	b := make([]byte, publicTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
