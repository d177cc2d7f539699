package seeds

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeedFile_Example(t *testing.T) {
	data, err := os.ReadFile("seed.example.yaml")
	require.NoError(t, err)

	f, err := ParseSeedFile(data)
	require.NoError(t, err)
	require.Len(t, f.Users, 1)
	assert.Equal(t, "ADMIN", f.Users[0].Role)
	require.Len(t, f.Prompts, 1)
	assert.Contains(t, f.Prompts[0].Template, "{context}")
	assert.Contains(t, f.Prompts[0].Template, "{userMessage}")
	require.NotNil(t, f.Prompts[0].MaxTokens)
	assert.Equal(t, 800, *f.Prompts[0].MaxTokens)
}

func TestParseSeedFile_Rejects(t *testing.T) {
	_, err := ParseSeedFile([]byte("users: [this is: not"))
	assert.Error(t, err)

	_, err = ParseSeedFile([]byte("users:\n  - user_name: a\n    email: a@b.c\n"))
	assert.ErrorContains(t, err, "users[0]")

	_, err = ParseSeedFile([]byte("prompts:\n  - name: x\n    provider: OPENAI\n"))
	assert.ErrorContains(t, err, "prompts[0]")
}
