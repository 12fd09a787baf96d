package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature, garbage
// payload, or expiry. Callers never learn which.
var ErrInvalidToken = errors.New("invalid token")

// TokenUser is the identity payload embedded in a token, nested under a
// "user" claim the way the SPA expects it.
type TokenUser struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Claims combines the registered expiry claims with the identity payload.
type Claims struct {
	jwt.RegisteredClaims
	User TokenUser `json:"user"`
}

// TokenManager issues and verifies HS256 signed bearer tokens. The secret is
// process-wide, immutable configuration; tokens stay valid until their fixed
// expiry, there is no refresh and no revocation.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager from the configured secret and TTL.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue mints a signed token asserting the given identity.
func (m *TokenManager) Issue(userID uuid.UUID, role Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		User: TokenUser{ID: userID.String(), Role: role},
	})
	return token.SignedString(m.secret)
}

// Verify checks signature and expiry, returning the embedded identity or
// ErrInvalidToken.
func (m *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL exposes the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}
