package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{
		Secret:    []byte("clave-de-prueba"),
		Issuer:    "tca",
		AccessTTL: time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testTokens()
	signed, exp, err := tokens.CreateAccessToken(42, "admin@tca.mx", []string{"administrador"})
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	userID, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestExpiredTokenMessage(t *testing.T) {
	tokens := testTokens()
	tokens.AccessTTL = -time.Minute
	signed, _, err := tokens.CreateAccessToken(7, "x@tca.mx", nil)
	require.NoError(t, err)

	_, err = tokens.ParseToken(signed)
	require.Error(t, err)
	assert.Equal(t, "Token expirado. Por favor, inicia sesión nuevamente.", err.Error())
	assert.Equal(t, 401, StatusOf(err))
}

func TestForgedTokenMessage(t *testing.T) {
	other := TokenService{Secret: []byte("otra-clave"), Issuer: "tca", AccessTTL: time.Hour}
	signed, _, err := other.CreateAccessToken(7, "x@tca.mx", nil)
	require.NoError(t, err)

	_, err = testTokens().ParseToken(signed)
	require.Error(t, err)
	assert.Equal(t, "Token inválido.", err.Error())
}

func TestWrongIssuerRejected(t *testing.T) {
	other := TokenService{Secret: []byte("clave-de-prueba"), Issuer: "otro", AccessTTL: time.Hour}
	signed, _, err := other.CreateAccessToken(7, "x@tca.mx", nil)
	require.NoError(t, err)

	_, err = testTokens().ParseToken(signed)
	require.Error(t, err)
	assert.Equal(t, "Token inválido.", err.Error())
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := testTokens().ParseToken("no-es-un-jwt")
	require.Error(t, err)
	assert.Equal(t, "Token inválido.", err.Error())
}

func TestPasswordHashAndVerify(t *testing.T) {
	tokens := testTokens()
	hashed, err := tokens.HashPassword("secreta123!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"))
	assert.True(t, tokens.VerifyPassword("secreta123!", hashed))
	assert.False(t, tokens.VerifyPassword("otra", hashed))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	tokens := testTokens()
	first, err := tokens.HashPassword("secreta123!")
	require.NoError(t, err)
	second, err := tokens.HashPassword("secreta123!")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateTemporaryPassword(t *testing.T) {
	password, err := GenerateTemporaryPassword(10)
	require.NoError(t, err)
	assert.Len(t, password, 10)
	assert.True(t, strings.ContainsAny(password, passwordUppercase))
	assert.True(t, strings.ContainsAny(password, passwordLowercase))
	assert.True(t, strings.ContainsAny(password, passwordNumbers))
	assert.True(t, strings.ContainsAny(password, passwordSymbols))
}

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	password, err := GenerateTemporaryPassword(1)
	require.NoError(t, err)
	assert.Len(t, password, 4)
}
