package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - A git repo with a build file passes
// - Missing .git fails with a hint about --unsafe
// - Missing build files fails
// - A non-directory root fails

func TestValidateProjectRoot_Valid(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.sbt"), []byte(""), 0o644))

	assert.NoError(t, ValidateProjectRoot(root))
}

func TestValidateProjectRoot_EveryBuildFileAccepted(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"build.sbt", "pom.xml", "gradlew"} {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(""), 0o644))
		assert.NoError(t, ValidateProjectRoot(root), name)
	}
}

func TestValidateProjectRoot_NotARepo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.sbt"), []byte(""), 0o644))

	err := ValidateProjectRoot(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--unsafe")
}

func TestValidateProjectRoot_NoBuildFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	assert.Error(t, ValidateProjectRoot(root))
}

func TestValidateProjectRoot_MissingDirectory(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateProjectRoot(filepath.Join(t.TempDir(), "nope")))
}
