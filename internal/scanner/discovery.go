package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a root directory and yields the source files to scan.
// Traversal is lexicographic, so repeated runs over an unchanged tree produce
// identical ordering.
type Discovery struct {
	rootDir        string
	sourcePatterns []compiledPattern
	ignorePatterns []compiledPattern
}

// NewDiscovery compiles the source and ignore glob patterns for rootDir.
func NewDiscovery(rootDir string, sourcePatterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range sourcePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.sourcePatterns = append(d.sourcePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover walks the tree and returns matching files in traversal order.
// Ignored directories are pruned without descending.
func (d *Discovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(d.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if entry.IsDir() {
			if relPath != "." && d.shouldIgnore(relPath) {
				return fs.SkipDir
			}
			return nil
		}

		if d.shouldIgnore(relPath) {
			return nil
		}
		if d.matchesAnyPattern(relPath, d.sourcePatterns) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// Matches reports whether a root-relative path is a source file this
// discovery would have yielded. Used to filter watch events.
func (d *Discovery) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if d.shouldIgnore(relPath) {
		return false
	}
	return d.matchesAnyPattern(relPath, d.sourcePatterns)
}

// shouldIgnore checks a path against the ignore patterns. A directory also
// matches a pattern written with a /** suffix, so "target/**" prunes the
// "target" directory itself.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}
	return d.matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// A pattern like "**/*.scala" should also match a root-level "Foo.scala"
	// even though there is no slash to feed the "**/" segment.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
