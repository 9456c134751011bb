package watcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Unknown paths count as changed
// - Update followed by the same content is unchanged
// - Different content for a known path is changed
// - Paths are tracked independently

func TestChangeCache(t *testing.T) {
	t.Parallel()

	cache, err := NewChangeCache(64)
	require.NoError(t, err)
	defer cache.Close()

	assert.True(t, cache.Changed("A.scala", "v1"), "unknown path is changed")

	cache.Update("A.scala", "v1")
	assert.False(t, cache.Changed("A.scala", "v1"))
	assert.True(t, cache.Changed("A.scala", "v2"))

	cache.Update("A.scala", "v2")
	assert.False(t, cache.Changed("A.scala", "v2"))

	assert.True(t, cache.Changed("B.scala", "v1"), "paths are independent")
}
