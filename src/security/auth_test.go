package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	svc := NewAuthService("test-secret-key-at-least-32-bytes-long!")

	hash, err := svc.HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, svc.CompareHashAndPassword(hash, "s3cret-password"))
	assert.Error(t, svc.CompareHashAndPassword(hash, "wrong-password"))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret-key-at-least-32-bytes-long!")

	token, err := svc.GenerateToken("42")
	require.NoError(t, err)

	sub, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewAuthService("issuer-secret-key-at-least-32-bytes-long")
	verifier := NewAuthService("different-secret-key-at-least-32-bytes!")

	token, err := issuer.GenerateToken("42")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateRefreshTokenUnique(t *testing.T) {
	svc := NewAuthService("test-secret-key-at-least-32-bytes-long!")

	a, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
