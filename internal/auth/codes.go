package auth

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// NewCode generates a short uppercase alphanumeric code for invite and
// recovery flows. Codes are scoped to a single user and not checked for
// global uniqueness.
func NewCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generate code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// NewTempPassword returns a random placeholder password for provisioned
// accounts. It is hashed and discarded without ever being revealed; the
// client replaces it when claiming the account.
func NewTempPassword() string {
	return uuid.NewString()
}
