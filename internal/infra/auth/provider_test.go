package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueThenVerifyReturnsSameUser(t *testing.T) {
	provider := NewTokenProvider(&Config{Secret: "test-secret", TokenTTL: 30 * time.Minute})

	token, err := provider.Issue(42)
	require.NoError(t, err)

	identity, err := provider.Verify(token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), identity.UserID)
}

func TestVerifyFailsOnExpiredToken(t *testing.T) {
	provider := NewTokenProvider(&Config{Secret: "test-secret", TokenTTL: -time.Minute})

	token, err := provider.Issue(42)
	require.NoError(t, err)

	_, err = provider.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyFailsOnWrongSecret(t *testing.T) {
	provider := NewTokenProvider(&Config{Secret: "test-secret", TokenTTL: 30 * time.Minute})
	other := NewTokenProvider(&Config{Secret: "another-secret", TokenTTL: 30 * time.Minute})

	token, err := provider.Issue(42)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyFailsOnGarbage(t *testing.T) {
	provider := NewTokenProvider(&Config{Secret: "test-secret", TokenTTL: 30 * time.Minute})

	_, err := provider.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	require.True(t, hasher.Verify("hunter2", hash))
	require.False(t, hasher.Verify("hunter3", hash))
}
