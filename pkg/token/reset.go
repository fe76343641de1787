// Package token issues and verifies the signed, time-limited tokens
// used by the password-reset flow.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ResetIssuer mints HS256-signed reset tokens bound to a user id.
type ResetIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewResetIssuer creates a new ResetIssuer
func NewResetIssuer(secret []byte, ttl time.Duration) *ResetIssuer {
	return &ResetIssuer{secret: secret, ttl: ttl}
}

// Issue returns a signed token identifying the user, valid for the
// configured lifetime.
func (i *ResetIssuer) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the signature and expiry and returns the user id the
// token was issued for.
func (i *ResetIssuer) Verify(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !parsed.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}
	return uint(userID), nil
}
