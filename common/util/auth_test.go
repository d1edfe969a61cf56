package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("s3cret", "not-a-hash"))
}

func TestAuthToken_RoundTrip(t *testing.T) {
	token, expires, err := GenerateAuthToken("secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := ParseAuthToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, AdminRole, claims.Role)
}

func TestAuthToken_Rejects(t *testing.T) {
	token, _, err := GenerateAuthToken("secret", time.Hour)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseAuthToken("other", token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, _, err := GenerateAuthToken("secret", -time.Minute)
		require.NoError(t, err)
		_, err = ParseAuthToken("secret", expired)
		assert.Error(t, err)
	})

	t.Run("wrong role", func(t *testing.T) {
		claims := &shared.AdminClaims{
			Role: "viewer",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = ParseAuthToken("secret", signed)
		assert.Error(t, err)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, _, err := GenerateAuthToken("", time.Hour)
		assert.Error(t, err)
	})
}
