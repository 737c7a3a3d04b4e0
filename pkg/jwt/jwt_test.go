package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "artium-indicacoes", 24)

	token, err := tm.GenerateToken("b7d2c0f4-session")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "b7d2c0f4-session", claims.SessionID)
	assert.Equal(t, "artium-indicacoes", claims.Issuer)
	assert.Equal(t, 24*time.Hour, tm.GetExpirationTime())
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", "artium-indicacoes", 1)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := tm.GenerateToken("sid")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", "artium-indicacoes", 1).GenerateToken("sid")
	require.NoError(t, err)

	_, err = NewTokenManager("other", "artium-indicacoes", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", "someone-else", 1).GenerateToken("sid")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "artium-indicacoes", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", "i", 1).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
