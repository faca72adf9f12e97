package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/ashokvas/flowspace/pkg/errors"
)

func TestUploadTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	ref := NewRef()

	signed, err := SignUploadToken(secret, ref, time.Minute)
	require.NoError(t, err)

	got, err := ParseUploadToken(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, ref, got)
}

func TestUploadTokenRejectsWrongSecret(t *testing.T) {
	signed, err := SignUploadToken([]byte("secret-a"), NewRef(), time.Minute)
	require.NoError(t, err)

	_, err = ParseUploadToken([]byte("secret-b"), signed)
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestUploadTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	signed, err := SignUploadToken(secret, NewRef(), -time.Minute)
	require.NoError(t, err)

	_, err = ParseUploadToken(secret, signed)
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestUploadTokenRejectsGarbage(t *testing.T) {
	_, err := ParseUploadToken([]byte("test-secret"), "not.a.token")
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}
