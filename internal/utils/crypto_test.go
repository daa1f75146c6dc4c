// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 16)

	other, err := GenerateRandomString(16)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}

func TestGenerateOrderNumber(t *testing.T) {
	number, err := GenerateOrderNumber()
	require.NoError(t, err)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "KL", parts[0])
	assert.Len(t, parts[1], 6)
	assert.Len(t, parts[2], 6)
}

func TestGenerateSlug(t *testing.T) {
	slug, err := GenerateSlug("asha-collection")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(slug, "asha-collection-"))
	assert.Len(t, slug, len("asha-collection-")+4)
}
