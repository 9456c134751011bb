package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the writer:
// - Apply inserts blocks at their offsets without disturbing original text
// - Multiple insertions applied rear-to-front keep offsets valid
// - WriteAtomic replaces content and preserves the file mode
// - WriteAtomic fails cleanly when the target cannot be replaced

func TestApply_SingleInsertion(t *testing.T) {
	t.Parallel()

	got := Apply("abcdef", []Insertion{{Offset: 3, Text: "XYZ"}})
	assert.Equal(t, "abcXYZdef", got)
}

func TestApply_MultipleInsertionsKeepOffsets(t *testing.T) {
	t.Parallel()

	content := "one two three"
	got := Apply(content, []Insertion{
		{Offset: 3, Text: "[1]"},
		{Offset: 7, Text: "[2]"},
	})
	assert.Equal(t, "one[1] two[2] three", got)

	// Order of the slice must not matter.
	got = Apply(content, []Insertion{
		{Offset: 7, Text: "[2]"},
		{Offset: 3, Text: "[1]"},
	})
	assert.Equal(t, "one[1] two[2] three", got)
}

func TestApply_NoInsertions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unchanged", Apply("unchanged", nil))
}

func TestWriteAtomic_ReplacesContentAndKeepsMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Model.scala")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteAtomic(path, "new content"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteAtomic_MissingFile(t *testing.T) {
	t.Parallel()

	err := WriteAtomic(filepath.Join(t.TempDir(), "absent.scala"), "x")
	assert.Error(t, err)
}
