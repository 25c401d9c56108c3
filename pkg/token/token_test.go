package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock/pkg/token"
)

const (
	testSecret = "test-secret"
	testIssuer = "control-stock-test"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := token.Generate(testSecret, "admin", "Administrador", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	username, role, err := token.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
	assert.Equal(t, "Administrador", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := token.Generate(testSecret, "admin", "Administrador", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = token.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := token.Generate(testSecret, "admin", "Administrador", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = token.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := token.Generate("", "admin", "Administrador", testIssuer, 60)
	assert.Error(t, err)

	_, _, err = token.Parse("", "lo-que-sea")
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, _, err := token.Parse(testSecret, "no.es.jwt")
	assert.Error(t, err)
}
