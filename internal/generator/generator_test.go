package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scalatools/casegen/internal/report"
	"github.com/scalatools/casegen/internal/scanner"
	"github.com/scalatools/casegen/internal/watcher"
)

// Test Plan for the pipeline:
// - Companion block appended after the declaration, blank-line separated
// - Extends clauses and class bodies stay attached to their declaration
// - Constant count equals depth-zero field segment count
// - Files without declarations are never modified
// - Empty case class produces an empty companion, not an error
// - Running twice appends a second block (transformation-only)
// - --skip-existing guard suppresses the second block
// - Dry-run prints blocks and writes nothing
// - Malformed declaration: diagnostic, file untouched, exit code 1
// - Unparseable field segment omitted with a warning diagnostic
// - Binary files skipped silently
// - Change cache suppresses reprocessing of unchanged content

const aliasInfoSource = `package demo

case class AliasInfo(
    alias: String,
    mcc_restriction: Seq[Int],
    regex_match: Boolean,
    source: String,
    brand_bounded: Boolean)
`

func writeSource(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readSource(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newTestGenerator(t *testing.T, root string, opts Options) *Generator {
	t.Helper()
	opts.RootDir = root
	discovery, err := scanner.NewDiscovery(root, []string{"**/*.scala"}, []string{".git/**", "target/**"})
	require.NoError(t, err)
	return New(opts, discovery, nil)
}

func TestGenerator_AppendsCompanion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "src/main/scala/demo/AliasInfo.scala", aliasInfoSource)
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.FilesScanned)
	assert.Equal(t, 1, rep.RecordsFound)
	assert.Equal(t, 5, rep.ConstantsEmitted)
	assert.Equal(t, 1, rep.FilesModified)
	assert.Equal(t, 0, rep.ExitCode())

	got := readSource(t, path)
	// Original declaration is untouched and still comes first.
	assert.True(t, strings.HasPrefix(got, aliasInfoSource[:len(aliasInfoSource)-1]))
	// Companion follows after a blank line, constants in declaration order.
	assert.Contains(t, got, "brand_bounded: Boolean)\n\nobject AliasInfo {\n")
	want := `object AliasInfo {
  val alias: String = "alias"
  val mcc_restriction: String = "mcc_restriction"
  val regex_match: String = "regex_match"
  val source: String = "source"
  val brand_bounded: String = "brand_bounded"
}
`
	assert.Contains(t, got, want)
}

func TestGenerator_MultipleDeclarationsOneFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "Models.scala", `case class A(x: Int)

case class B(y: String, z: Long)
`)
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, rep.RecordsFound)
	assert.Equal(t, 3, rep.ConstantsEmitted)

	got := readSource(t, path)
	// Each block sits immediately after its own declaration.
	assert.Contains(t, got, "case class A(x: Int)\n\nobject A {\n  val x: String = \"x\"\n}\n")
	assert.Contains(t, got, "case class B(y: String, z: Long)\n\nobject B {\n")
	assert.Less(t, strings.Index(got, "object A"), strings.Index(got, "case class B"))
}

func TestGenerator_AppendsAfterExtendsClause(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "Event.scala", `sealed trait Event

case class Click(x: Int, y: Int) extends Event
`)
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.RecordsFound)
	got := readSource(t, path)
	// The block goes after the full declaration, never between the
	// parameter list and the extends clause.
	assert.Contains(t, got, "case class Click(x: Int, y: Int) extends Event\n\nobject Click {\n")
	assert.NotContains(t, got, "}\n extends")
	assert.NotContains(t, got, ")\n\nobject Click {\n  val x: String = \"x\"\n  val y: String = \"y\"\n}\n extends")
}

func TestGenerator_AppendsAfterClassBody(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "Point.scala", `case class Point(x: Int, y: Int) extends AnyRef {
  def norm: Double = math.sqrt(x * x + y * y)
}
`)
	gen := newTestGenerator(t, root, Options{})

	_, err := gen.Run(context.Background())
	require.NoError(t, err)

	got := readSource(t, path)
	assert.Contains(t, got, "def norm: Double = math.sqrt(x * x + y * y)\n}\n\nobject Point {\n")
}

func TestGenerator_NoMatchFileUntouched(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	content := "object Util {\n  def id[T](t: T): T = t\n}\n"
	path := writeSource(t, root, "Util.scala", content)
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.FilesScanned)
	assert.Equal(t, 0, rep.RecordsFound)
	assert.Equal(t, 0, rep.FilesModified)
	assert.Equal(t, content, readSource(t, path))
}

func TestGenerator_EmptyCaseClass(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "Empty.scala", "case class Empty()\n")
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.RecordsFound)
	assert.Equal(t, 0, rep.ConstantsEmitted)
	assert.Equal(t, 0, rep.ExitCode())
	assert.Contains(t, readSource(t, path), "object Empty {\n}\n")
}

func TestGenerator_DoubleRunAppendsTwice(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "A.scala", "case class A(x: Int)\n")
	gen := newTestGenerator(t, root, Options{})

	_, err := gen.Run(context.Background())
	require.NoError(t, err)
	_, err = gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(readSource(t, path), "object A {"))
}

func TestGenerator_SkipExistingGuard(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "A.scala", "case class A(x: Int)\n")
	gen := newTestGenerator(t, root, Options{SkipExisting: true})

	_, err := gen.Run(context.Background())
	require.NoError(t, err)
	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, rep.RecordsFound)
	assert.Equal(t, 0, rep.FilesModified)
	assert.Equal(t, 1, strings.Count(readSource(t, path), "object A {"))
}

func TestGenerator_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "A.scala", "case class A(x: Int, y: String)\n")
	gen := newTestGenerator(t, root, Options{DryRun: true})
	var out bytes.Buffer
	gen.SetOutput(&out)

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.RecordsFound)
	assert.Equal(t, 2, rep.ConstantsEmitted)
	assert.Equal(t, 0, rep.FilesModified)
	assert.Equal(t, "case class A(x: Int, y: String)\n", readSource(t, path))
	assert.Contains(t, out.String(), "object A {")
	assert.Contains(t, out.String(), `val x: String = "x"`)
}

func TestGenerator_MalformedDeclaration(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	content := "case class Broken(alias: String,\n    count: Int"
	path := writeSource(t, root, "Broken.scala", content)
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, report.KindMalformedDeclaration, rep.Diagnostics[0].Kind)
	assert.Equal(t, "Broken.scala", rep.Diagnostics[0].File)
	assert.Equal(t, 1, rep.Diagnostics[0].Line)
	assert.Equal(t, 1, rep.ExitCode())
	assert.Equal(t, content, readSource(t, path))
}

func TestGenerator_UnparseableFieldSegmentOmitted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "A.scala", "case class A(x: Int, 42, y: String)\n")
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, report.KindUnparseableField, rep.Diagnostics[0].Kind)
	assert.Equal(t, 0, rep.ExitCode()) // warning only
	assert.Equal(t, 2, rep.ConstantsEmitted)

	got := readSource(t, path)
	assert.Contains(t, got, `val x: String = "x"`)
	assert.Contains(t, got, `val y: String = "y"`)
	assert.NotContains(t, got, "42")
}

func TestGenerator_BinaryFileSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "blob.scala", "case class\x00Fake(a: Int)")
	gen := newTestGenerator(t, root, Options{})

	rep, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, rep.FilesScanned)
	assert.Equal(t, 1, rep.BinarySkipped)
	assert.Empty(t, rep.Diagnostics)
	assert.Equal(t, "case class\x00Fake(a: Int)", readSource(t, path))
}

func TestGenerator_ChangeCacheSkipsUnchanged(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeSource(t, root, "A.scala", "case class A(x: Int)\n")
	gen := newTestGenerator(t, root, Options{})

	cache, err := watcher.NewChangeCache(64)
	require.NoError(t, err)
	defer cache.Close()
	gen.SetChangeCache(cache)

	rep, err := gen.ProcessFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.FilesModified)

	// Content hash was refreshed after the write, so the pass the watcher
	// would trigger for our own output does nothing.
	rep, err = gen.ProcessFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.RecordsFound)
	assert.Equal(t, 0, rep.FilesModified)
	assert.Equal(t, 1, strings.Count(readSource(t, path), "object A {"))
}

func TestGenerator_CancelledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "A.scala", "case class A(x: Int)\n")
	gen := newTestGenerator(t, root, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
