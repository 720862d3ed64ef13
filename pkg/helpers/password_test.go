package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltVaries(t *testing.T) {
	h1, err := HashPassword("p1")
	require.NoError(t, err)
	h2, err := HashPassword("p1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same input must differ")
	assert.NotEqual(t, "p1", h1)

	assert.True(t, CompareHashAndPassword(h1, "p1"))
	assert.True(t, CompareHashAndPassword(h2, "p1"))
}

func TestCompareHashAndPassword_Mismatch(t *testing.T) {
	h, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.False(t, CompareHashAndPassword(h, "wrong horse"))
	assert.False(t, CompareHashAndPassword(h, ""))
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "correct horse"))
}
