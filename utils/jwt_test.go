package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-42", "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, role, err := ExtractPrincipalFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
	assert.Equal(t, "admin", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-42", "user", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractPrincipalFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ExtractPrincipalFromToken("not-a-token")
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashToken("other-token"))
}
