package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduline/lms-server/auth"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := auth.BcryptHasher{}

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, hasher.Compare("s3cret-password", hash))
}

func TestBcryptHasherEmptyPassword(t *testing.T) {
	hasher := auth.BcryptHasher{}

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, auth.ErrNoEmptyString)
}

func TestBcryptHasherMismatch(t *testing.T) {
	hasher := auth.BcryptHasher{}

	hash, err := hasher.Hash("correct")
	require.NoError(t, err)

	err = hasher.Compare("wrong", hash)
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
}

func TestBcryptHasherGarbageHash(t *testing.T) {
	hasher := auth.BcryptHasher{}

	err := hasher.Compare("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
}

func TestBcryptHasherUniqueSalts(t *testing.T) {
	hasher := auth.BcryptHasher{}

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, hasher.Compare("same-password", first))
	assert.NoError(t, hasher.Compare("same-password", second))
}
