package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-that-is-32-chars-long"

func newTestJWTService(t *testing.T, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(testSecret, time.Hour, now)
	require.NoError(t, err)
	return svc
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestNewJWTService(t *testing.T) {
	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 15})
	require.NoError(t, err)
	assert.NotNil(t, svc)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 15})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, fixedClock(now))
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID, "alice1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice1", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.True(t, claims.IssuedAt.Equal(now))
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Failures(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestJWTService(t, fixedClock(issued))
	token, err := issuer.GenerateToken(context.Background(), uuid.New(), "alice1")
	require.NoError(t, err)

	otherKey, err := newHMACJWTService(strings.Repeat("x", 40), time.Hour, fixedClock(issued))
	require.NoError(t, err)
	foreignToken, err := otherKey.GenerateToken(context.Background(), uuid.New(), "bobby2")
	require.NoError(t, err)

	wrongType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
		UserID:    uuid.New(),
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
		UserID:    uuid.New(),
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Split(foreignToken, ".")[2]

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{"empty", "", issued, ErrMissingToken},
		{"garbage", "not.a.token", issued, ErrInvalidToken},
		{"wrong signature", foreignToken, issued, ErrInvalidToken},
		{"tampered signature", tampered, issued, ErrInvalidToken},
		{"none algorithm", noneAlg, issued, ErrInvalidToken},
		{"wrong token type", wrongType, issued, ErrWrongTokenType},
		{"expired", token, issued.Add(time.Hour + defaultClockSkew + time.Second), ErrExpiredToken},
		{"issued in the future", token, issued.Add(-defaultClockSkew - time.Minute), ErrTokenNotYetValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestJWTService(t, fixedClock(tt.now))
			claims, err := svc.ValidateToken(context.Background(), tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateToken_WithinClockSkew(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	token, err := newTestJWTService(t, fixedClock(issued)).GenerateToken(context.Background(), uuid.New(), "alice1")
	require.NoError(t, err)

	lateVerifier := newTestJWTService(t, fixedClock(issued.Add(time.Hour+time.Minute)))
	_, err = lateVerifier.ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}
