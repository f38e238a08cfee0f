package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "vehicle-shipping-backend/pkg/errors"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateTokenPair(t *testing.T) {
	userID := uuid.New()

	pair, err := GenerateTokenPair(userID, "admin@example.com", "admin", testSecret, 1, 168)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "user@example.com", "user", testSecret, 1, 168)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "another-secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = ValidateToken("", testSecret)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "user@example.com", "user", testSecret, -1, -1)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, testSecret)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}
