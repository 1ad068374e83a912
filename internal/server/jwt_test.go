package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/config"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestJWTRoundTrip(t *testing.T) {
	svc := newTestJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := newTestJWTService("secret-a").GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = newTestJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTEmptyToken(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("")
	assert.Error(t, err)
}

func TestJWTGarbageToken(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTValidatorAdapter(t *testing.T) {
	svc := newTestJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
