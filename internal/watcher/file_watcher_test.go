package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - A write to a watched extension fires the callback after the debounce
// - Changes to other extensions are filtered out
// - Stop() is idempotent and safe before Start()

func TestFileWatcher_FiresOnScalaWrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fw, err := NewFileWatcher(root, []string{".scala"}, 50*time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	events := make(chan []string, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx, func(files []string) {
		select {
		case events <- files:
		default:
		}
	}))

	path := filepath.Join(root, "A.scala")
	require.NoError(t, os.WriteFile(path, []byte("case class A(x: Int)"), 0o644))

	select {
	case files := <-events:
		assert.Contains(t, files, path)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher callback")
	}
}

func TestFileWatcher_FiltersOtherExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fw, err := NewFileWatcher(root, []string{".scala"}, 50*time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	events := make(chan []string, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx, func(files []string) {
		select {
		case events <- files:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644))

	select {
	case files := <-events:
		t.Fatalf("unexpected callback for %v", files)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_StopWithoutStart(t *testing.T) {
	t.Parallel()

	fw, err := NewFileWatcher(t.TempDir(), []string{".scala"}, 50*time.Millisecond)
	require.NoError(t, err)

	assert.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop(), "Stop is idempotent")
}
