package txid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesUniqueIDs(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id, err := New()
		require.NoError(t, err)
		assert.False(t, seen[id], "New() produced a duplicate id")
		seen[id] = true
	}
}

func TestEqual(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	b := a

	assert.True(t, Equal(a, b))

	c, err := New()
	require.NoError(t, err)
	assert.False(t, Equal(a, c))
}

func TestString(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	assert.Len(t, String(id), Size*2)
}
