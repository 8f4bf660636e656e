package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenTypeAccess marks access tokens in the "type" claim.
const TokenTypeAccess = "access"

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID, username string) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or ErrInvalidToken
	// when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the application view of a validated token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Username is the username at the time the token was issued.
	Username string `json:"usr,omitempty"`

	// TokenType indicates the purpose of the token.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
