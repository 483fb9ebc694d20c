package auth

import (
	"context"
	"time"
)

// JWTService issues and validates the signed session tokens handed out at logon.
// Sessions are stateless: a token is valid until it expires and cannot be revoked.
type JWTService interface {
	// GenerateToken creates a signed access token whose subject is username.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken verifies the signature and expiry of tokenString and
	// returns its claims. It returns ErrExpiredToken once the expiry instant
	// has been reached and ErrInvalidToken for anything malformed or forged.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified contents of a session token.
type Claims struct {
	// Subject is the username the token was issued for.
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
