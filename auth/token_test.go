package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduline/lms-server/auth"
)

const testSigningKey = "test-signing-key"

func TestTokenServiceGenerateAndValidate(t *testing.T) {
	ts := auth.NewTokenService([]byte(testSigningKey), 30*time.Minute, "lms-server", nil)

	userID := uuid.New()
	token, err := ts.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UID)
	assert.Equal(t, userID.String(), claims.Subject)

	parsed, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)

	require.NotNil(t, claims.ExpiresAt)
	ttl := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestTokenServiceExpiredToken(t *testing.T) {
	ts := auth.NewTokenService([]byte(testSigningKey), -time.Minute, "lms-server", nil)

	token, err := ts.Generate(uuid.New())
	require.NoError(t, err)

	_, err = ts.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestTokenServiceTamperedToken(t *testing.T) {
	ts := auth.NewTokenService([]byte(testSigningKey), 30*time.Minute, "lms-server", nil)

	token, err := ts.Generate(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ts.Validate(tampered)
	assert.Error(t, err)
}

func TestTokenServiceWrongKey(t *testing.T) {
	issuer := auth.NewTokenService([]byte(testSigningKey), 30*time.Minute, "lms-server", nil)
	verifier := auth.NewTokenService([]byte("a-different-key"), 30*time.Minute, "lms-server", nil)

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenServiceGarbage(t *testing.T) {
	ts := auth.NewTokenService([]byte(testSigningKey), 30*time.Minute, "lms-server", nil)

	_, err := ts.Validate("not.a.jwt")
	assert.Error(t, err)
}
