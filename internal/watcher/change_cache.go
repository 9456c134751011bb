package watcher

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/maypok86/otter"
)

// ChangeCache remembers the content hash of every file the pipeline last
// processed. Watch mode consults it to skip files whose content has not
// actually changed - including the tool's own just-written output, whose
// rename would otherwise retrigger generation immediately.
type ChangeCache struct {
	cache otter.Cache[string, string]
}

// NewChangeCache creates a cache holding up to capacity file hashes.
func NewChangeCache(capacity int) (*ChangeCache, error) {
	cache, err := otter.MustBuilder[string, string](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &ChangeCache{cache: cache}, nil
}

// Changed reports whether content differs from the last recorded hash for
// path. Unknown paths count as changed.
func (c *ChangeCache) Changed(path, content string) bool {
	prev, ok := c.cache.Get(path)
	if !ok {
		return true
	}
	return prev != hashContent(content)
}

// Update records the current content hash for path.
func (c *ChangeCache) Update(path, content string) {
	c.cache.Set(path, hashContent(content))
}

// Close releases the cache's resources.
func (c *ChangeCache) Close() {
	c.cache.Close()
}

func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
