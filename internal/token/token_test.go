package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestIsValid_FutureExpiry(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.True(t, IsValid(tok))
}

func TestIsValid_ExpiredToken(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	assert.False(t, IsValid(tok))
}

func TestIsValid_MissingExpClaim(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"sub": "1"})
	assert.False(t, IsValid(tok))
}

func TestIsValid_MalformedInput(t *testing.T) {
	for _, tok := range []string{"", "   ", "not-a-jwt", "a.b", "a.!!!.c"} {
		assert.False(t, IsValid(tok), "token %q should be invalid", tok)
	}
}

func TestIsValid_SignatureNotChecked(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	// Corrupt the signature segment only; the expiry check must still
	// decode the payload since the API is the authority on validity.
	tampered := tok[:len(tok)-4] + "AAAA"
	assert.True(t, IsValid(tampered))
}

func TestExpiry(t *testing.T) {
	want := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	tok := mintToken(t, jwt.MapClaims{"exp": want.Unix()})

	got, ok := Expiry(tok)
	require.True(t, ok)
	assert.WithinDuration(t, want, got, time.Second)

	_, ok = Expiry("garbage")
	assert.False(t, ok)
}
