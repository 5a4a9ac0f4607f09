// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	userID := uuid.New()
	token, err := GenerateAccessToken(userID, "Test User", "vendor", 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "Test User", claims.Name)
	assert.Equal(t, "vendor", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	token, err := GenerateAccessToken(uuid.New(), "Test User", "buyer", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	userID := uuid.New()
	token, err := GenerateRefreshToken(userID, 168)
	require.NoError(t, err)

	subject, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)
}

// The two token families sign with different secrets, so a refresh
// token must never pass access validation and vice versa.
func TestTokenFamiliesAreDistinct(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	userID := uuid.New()

	refreshToken, err := GenerateRefreshToken(userID, 168)
	require.NoError(t, err)
	_, err = ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	accessToken, err := GenerateAccessToken(userID, "Test User", "buyer", 15)
	require.NoError(t, err)
	_, err = ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	token, err := GenerateAccessToken(uuid.New(), "Test User", "buyer", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token + "x")
	assert.Error(t, err)
}
