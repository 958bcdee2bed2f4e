package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaqueTokenLength(t *testing.T) {
	token, err := NewOpaqueToken()
	require.NoError(t, err)
	assert.Len(t, token, TokenLength)
}

func TestNewOpaqueTokenAlphabet(t *testing.T) {
	alphanumeric := regexp.MustCompile(`^[A-Za-z0-9]+$`)

	token, err := NewOpaqueToken()
	require.NoError(t, err)
	assert.Regexp(t, alphanumeric, token)
}

func TestNewOpaqueTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := NewOpaqueToken()
		require.NoError(t, err)
		require.False(t, seen[token], "token generated twice")
		seen[token] = true
	}
}
