package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/resume_forge")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "9090")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/resume_forge", cfg.DatabaseURL)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestLoadServerConfigDefaultPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/resume_forge")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadServerConfigMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := LoadServerConfig()
	assert.Error(t, err)
}

func TestLoadServerConfigInvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/resume_forge")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "not-a-number")

	_, err := LoadServerConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)

	assert.Equal(t, "super-secret", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfigMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfigInvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "0")

	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

func TestPasswordPepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper-a")

	withPepper, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := withPepper.HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, withPepper.VerifyPassword("password123", hash))

	t.Setenv("PASSWORD_PEPPER", "pepper-b")
	otherPepper, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.False(t, otherPepper.VerifyPassword("password123", hash))
}

func TestPasswordCostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	_, err := NewPasswordConfig()
	assert.Error(t, err)
}
