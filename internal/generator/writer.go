package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Insertion pairs a byte offset in the original content with text to insert
// there. Offsets refer to the unmodified content.
type Insertion struct {
	Offset int
	Text   string
}

// Apply inserts every block into content. Insertions are applied rear-to-front
// so earlier offsets stay valid; the original text is never modified, only
// added to.
func Apply(content string, insertions []Insertion) string {
	sorted := make([]Insertion, len(insertions))
	copy(sorted, insertions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	var b strings.Builder
	for _, ins := range sorted {
		b.Reset()
		b.WriteString(content[:ins.Offset])
		b.WriteString(ins.Text)
		b.WriteString(content[ins.Offset:])
		content = b.String()
	}
	return content
}

// WriteAtomic replaces the file at path with content via a temp file in the
// same directory and a rename, preserving the original file mode. A partial
// write can never corrupt the source file.
func WriteAtomic(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".casegen-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename over %s: %w", path, err)
	}
	return nil
}
