package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("rahasia123"))
	assert.Error(t, ValidatePassword("pendek1"))
	assert.Error(t, ValidatePassword("tanpaangkasama"))
	assert.Error(t, ValidatePassword("1234567890"))
}

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", h)
	assert.NoError(t, CheckPasswordHash(h, "rahasia123"))
	assert.Error(t, CheckPasswordHash(h, "salah123"))
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "admin@pln.co.id", NormalizeIdentifier("  Admin@PLN.co.id "))
	assert.Equal(t, "AdminTJSL", NormalizeIdentifier(" AdminTJSL "))
}
