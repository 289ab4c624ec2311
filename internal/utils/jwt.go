package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by [TokenExpiry] when the token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// TokenExpiry reads the exp claim of a JWT access token without verifying
// its signature.
//
// The client is not the audience that validates the token; it only needs to
// know when to ask the authority for a new one. Opaque (non-JWT) tokens
// return an error and callers fall back to the expires_in field of the
// token response.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, err
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}

	return claims.ExpiresAt.Time, nil
}
