// Package auth validates the bearer tokens presented by calling systems
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingRole is returned when a valid token does not carry the required role
var ErrMissingRole = errors.New("token does not grant the required role")

// Principal is the caller identified by a validated token
type Principal struct {
	Subject     string
	Authorities []string
}

// HasRole reports whether the principal was granted role
func (p *Principal) HasRole(role string) bool {
	return slices.Contains(p.Authorities, role)
}

// TokenService signs and validates HS256 access tokens
type TokenService struct {
	secret string
}

// NewTokenService creates a token service for the shared secret
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: secret}
}

// GenerateToken issues a token for subject granting authorities
func (ts *TokenService) GenerateToken(subject string, authorities []string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         subject,
		"authorities": authorities,
		"iat":         now.Unix(),
		"exp":         now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken checks the signature and expiry of a token and returns its principal
func (ts *TokenService) ValidateToken(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	principal := &Principal{}
	if sub, ok := claims["sub"].(string); ok {
		principal.Subject = sub
	}

	// JSON arrays decode as []any
	if raw, ok := claims["authorities"].([]any); ok {
		for _, a := range raw {
			if s, ok := a.(string); ok {
				principal.Authorities = append(principal.Authorities, s)
			}
		}
	}

	return principal, nil
}

// Authorize validates a token and requires it to grant role
func (ts *TokenService) Authorize(tokenString, role string) (*Principal, error) {
	principal, err := ts.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !principal.HasRole(role) {
		return nil, ErrMissingRole
	}
	return principal, nil
}
