package secret

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHexKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestCipher_RoundTrip(t *testing.T) {
	c, err := NewCipher(testHexKey)
	require.NoError(t, err)

	ct, err := c.Encrypt("sk-test-1234567890")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "v1:"))
	assert.NotContains(t, ct, "sk-test")

	pt, err := c.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-1234567890", pt)
}

func TestCipher_NonceIsRandom(t *testing.T) {
	c, err := NewCipher(testHexKey)
	require.NoError(t, err)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewCipher_AcceptsBase64Key(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	c, err := NewCipher(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)

	ct, err := c.Encrypt("hello")
	require.NoError(t, err)
	pt, err := c.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "hello", pt)
}

func TestNewCipher_FailsClosed(t *testing.T) {
	_, err := NewCipher("")
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = NewCipher("too-short")
	assert.ErrorIs(t, err, ErrInvalidKey)

	var nilCipher *Cipher
	_, err = nilCipher.Encrypt("x")
	assert.ErrorIs(t, err, ErrMissingKey)
	_, err = nilCipher.Decrypt("v1:abcd")
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestDecrypt_RejectsPlainBase64AndTampering(t *testing.T) {
	c, err := NewCipher(testHexKey)
	require.NoError(t, err)

	_, err = c.Decrypt(base64.StdEncoding.EncodeToString([]byte("sk-legacy")))
	assert.ErrorIs(t, err, ErrMalformed)

	ct, err := c.Encrypt("sk-real")
	require.NoError(t, err)
	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ct, "v1:"))
	require.NoError(t, err)
	blob[len(blob)-1] ^= 0xff
	_, err = c.Decrypt("v1:" + base64.StdEncoding.EncodeToString(blob))
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDecrypt_WrongKey(t *testing.T) {
	c1, err := NewCipher(testHexKey)
	require.NoError(t, err)
	c2, err := NewCipher(strings.Repeat("ab", 32))
	require.NoError(t, err)

	ct, err := c1.Encrypt("sk-abc")
	require.NoError(t, err)
	_, err = c2.Decrypt(ct)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestKeyHint(t *testing.T) {
	assert.Equal(t, "…7890", KeyHint("sk-1234567890"))
	assert.Equal(t, "***", KeyHint("abc"))
}
