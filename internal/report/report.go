package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiagnosticKind classifies a problem encountered during a run.
type DiagnosticKind string

const (
	// KindMalformedDeclaration is a case class whose field-list brackets never
	// balance before end-of-file. Contributes to a non-zero exit code.
	KindMalformedDeclaration DiagnosticKind = "malformed-declaration"
	// KindUnparseableField is a field segment with no depth-zero colon. The
	// field is omitted; generation continues.
	KindUnparseableField DiagnosticKind = "unparseable-field"
	// KindWriteError is a failure writing generated output back to a file.
	// Contributes to a non-zero exit code.
	KindWriteError DiagnosticKind = "write-error"
	// KindUnreadableFile is a file that could not be opened or read. The file
	// is skipped; the scan continues.
	KindUnreadableFile DiagnosticKind = "unreadable-file"
)

// Diagnostic describes one localized problem: a file, optionally a line, and
// what went wrong. No diagnostic ever aborts the overall scan.
type Diagnostic struct {
	Kind   DiagnosticKind
	File   string
	Line   int // 1-based; 0 when not applicable
	Detail string
}

// Fatal reports whether this diagnostic should make the process exit non-zero.
func (d Diagnostic) Fatal() bool {
	return d.Kind == KindMalformedDeclaration || d.Kind == KindWriteError
}

func (d Diagnostic) String() string {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, loc, d.Detail)
}

// Report accumulates everything one run observed. It is created by the caller,
// threaded explicitly through discovery and generation, and returned to the
// CLI; there is no ambient global state.
type Report struct {
	RunID string

	FilesScanned     int
	BinarySkipped    int
	RecordsFound     int
	ConstantsEmitted int
	FilesModified    int

	Diagnostics []Diagnostic

	Started time.Time
}

// New creates an empty report stamped with a fresh run ID.
func New() *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
}

// Add records a diagnostic.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Merge folds another report's counters and diagnostics into r. Used by watch
// mode, where each rebuild pass produces its own report but the process exit
// code must aggregate all of them.
func (r *Report) Merge(other *Report) {
	r.FilesScanned += other.FilesScanned
	r.BinarySkipped += other.BinarySkipped
	r.RecordsFound += other.RecordsFound
	r.ConstantsEmitted += other.ConstantsEmitted
	r.FilesModified += other.FilesModified
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// FatalCount returns the number of diagnostics that force a non-zero exit.
func (r *Report) FatalCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Fatal() {
			n++
		}
	}
	return n
}

// ExitCode is 1 if any malformed declaration or write failure occurred, else 0.
// Finding zero records is not an error.
func (r *Report) ExitCode() int {
	if r.FatalCount() > 0 {
		return 1
	}
	return 0
}

// Summary renders a human-readable end-of-run summary.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s finished in %.2fs\n", r.RunID, time.Since(r.Started).Seconds())
	fmt.Fprintf(&b, "  files scanned:     %d\n", r.FilesScanned)
	if r.BinarySkipped > 0 {
		fmt.Fprintf(&b, "  binary skipped:    %d\n", r.BinarySkipped)
	}
	fmt.Fprintf(&b, "  case classes:      %d\n", r.RecordsFound)
	fmt.Fprintf(&b, "  constants emitted: %d\n", r.ConstantsEmitted)
	fmt.Fprintf(&b, "  files modified:    %d\n", r.FilesModified)
	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(&b, "  diagnostics:       %d (%d fatal)\n", len(r.Diagnostics), r.FatalCount())
	}
	return b.String()
}
