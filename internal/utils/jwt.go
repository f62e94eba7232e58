package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errors returned by the JWT helpers.
var (
	ErrInvalidJWTParams          = errors.New("invalid params for generating JWT Token")
	ErrEmptySubject              = errors.New("empty subject error")
	ErrInvalidAuthorizationValue = errors.New("invalid authorization header")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT carrying the issuer,
// subject, issue time and expiry claims.
//
// All parameters are required. A negative tokenDuration is accepted and
// yields an already expired token.
//
// Example usage:
//
//	signed, err := utils.GenerateJWTToken("demo", "alice", time.Hour, "secret")
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || subject == "" || tokenDuration == 0 || signKey == "" {
		return "", ErrInvalidJWTParams
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken checks the signature, issuer and expiry of
// tokenString and returns its subject. Only HMAC signing methods are
// accepted.
//
// Example usage:
//
//	subject, err := utils.ValidateAndParseJWTToken(raw, "secret", "demo")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return "", ErrEmptySubject
	}

	return subject, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationValue
	}
	return parts[1], nil
}
