package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("ops", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", decoded.Subject())
	tokenType, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken("ops", "admin")
	assert.Error(t, err)
}

func TestDecode_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("one-secret", "1h").GenerateAccessToken("ops", "admin")
	require.NoError(t, err)

	_, err = NewJWTService("another-secret", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
