package testutils

import (
	"context"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// DefaultJWTConfig returns an AuthConfig suitable for tests.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	}
}

// RequireTestJWTService creates a JWT service from DefaultJWTConfig.
func RequireTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// GenerateAuthHeaderForTestingT returns a "Bearer <token>" header value
// for subject signed with DefaultJWTConfig.
func GenerateAuthHeaderForTestingT(t *testing.T, subject string) string {
	t.Helper()
	token, err := RequireTestJWTService(t).GenerateToken(context.Background(), subject)
	require.NoError(t, err, "Failed to generate auth header")
	return "Bearer " + token
}
