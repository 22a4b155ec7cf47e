// Package token inspects session tokens on the client side of the
// portfolio API. The payload segment is decoded without signature
// verification: this is an expedience check used for UI gating and
// redirects only, never an authorization boundary. The upstream API
// remains the authority on every request.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("token missing")
	ErrTokenDecode  = errors.New("token cannot be decoded")
	ErrNoExpiration = errors.New("token has no expiry claim")
)

type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// DecodeClaims decodes the payload segment of the given token without
// verifying its signature. A missing or undecodable token yields an error,
// never a panic.
func DecodeClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrTokenDecode
	}

	return claims, nil
}

// IsExpired reports whether the token should be treated as expired.
// Fail-safe default: a missing token, an undecodable token, or a token
// without an exp claim all read as expired.
func IsExpired(tokenString string) bool {
	claims, err := DecodeClaims(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !time.Now().Before(claims.ExpiresAt.Time)
}

// ExpiresAt returns the expiry time of the token, or ErrNoExpiration
// when the claim is absent.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := DecodeClaims(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiration
	}
	return claims.ExpiresAt.Time, nil
}
