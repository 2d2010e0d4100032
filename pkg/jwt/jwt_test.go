package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate(secret, 42, "admin@ittest-team.ru", "super_admin", "device-accounting", 60)
	require.NoError(t, err)

	userID, email, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "admin@ittest-team.ru", email)
	assert.Equal(t, "super_admin", role)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", 1, "a@b.ru", "user", "iss", 60)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate(secret, 1, "a@b.ru", "user", "iss", 60)
	require.NoError(t, err)

	_, _, _, err = Parse("other-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate(secret, 1, "a@b.ru", "user", "iss", -5)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, _, _, err := Parse(secret, "not-a-token")
	assert.Error(t, err)
}
