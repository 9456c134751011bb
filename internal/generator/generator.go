package generator

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/scalatools/casegen/internal/report"
	"github.com/scalatools/casegen/internal/scala"
	"github.com/scalatools/casegen/internal/scanner"
	"github.com/scalatools/casegen/internal/watcher"
)

// Options controls one generation pipeline.
type Options struct {
	RootDir      string
	DryRun       bool   // report and print blocks, write nothing
	SkipExisting bool   // skip classes that already have a companion object
	Indent       string // indentation inside the object body
	Verbose      bool
}

// Generator runs the locate → parse → render → append pipeline. Files are
// processed one at a time; there is no shared state across files.
type Generator struct {
	opts      Options
	discovery *scanner.Discovery
	progress  ProgressReporter
	cache     *watcher.ChangeCache // optional, watch mode only
	out       io.Writer            // dry-run block output
}

// New creates a Generator. A nil progress reporter is replaced with a no-op.
func New(opts Options, discovery *scanner.Discovery, progress ProgressReporter) *Generator {
	if progress == nil {
		progress = NoOpProgressReporter{}
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	return &Generator{
		opts:      opts,
		discovery: discovery,
		progress:  progress,
		out:       os.Stdout,
	}
}

// SetChangeCache attaches a content-hash cache. Files whose content matches
// the cached hash are skipped, and the cache is refreshed after every
// processed file.
func (g *Generator) SetChangeCache(cache *watcher.ChangeCache) {
	g.cache = cache
}

// SetOutput redirects dry-run block output (tests).
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// Run discovers all source files under the root and processes them.
func (g *Generator) Run(ctx context.Context) (*report.Report, error) {
	g.progress.OnDiscoveryStart()
	files, err := g.discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("file discovery: %w", err)
	}
	g.progress.OnDiscoveryComplete(len(files))

	return g.ProcessFiles(ctx, files)
}

// ProcessFiles runs the pipeline over an explicit file list (watch mode hands
// in just the changed files). The returned report is always non-nil; the
// error is non-nil only for cancellation.
func (g *Generator) ProcessFiles(ctx context.Context, files []string) (*report.Report, error) {
	rep := report.New()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		g.processFile(file, rep)
		g.progress.OnFileProcessed(file)
	}

	g.progress.OnComplete(rep)
	return rep, nil
}

// processFile scans one file and appends companion blocks for every case
// class found. All failures are local: they land in the report and never
// abort the scan.
func (g *Generator) processFile(path string, rep *report.Report) {
	relPath, err := filepath.Rel(g.opts.RootDir, path)
	if err != nil {
		relPath = path
	}

	content, text, err := scanner.ReadText(path)
	if err != nil {
		rep.Add(report.Diagnostic{
			Kind:   report.KindUnreadableFile,
			File:   relPath,
			Detail: err.Error(),
		})
		log.Printf("Warning: skipping unreadable file %s: %v", relPath, err)
		return
	}
	if !text {
		rep.BinarySkipped++
		return
	}
	rep.FilesScanned++

	if g.cache != nil && !g.cache.Changed(path, content) {
		if g.opts.Verbose {
			log.Printf("%s: content unchanged, skipping", relPath)
		}
		return
	}

	decls, malformed := scala.Scan(content)
	for _, m := range malformed {
		rep.Add(report.Diagnostic{
			Kind:   report.KindMalformedDeclaration,
			File:   relPath,
			Line:   m.Line,
			Detail: fmt.Sprintf("case class %s: field list never closes before end of file", m.Name),
		})
		log.Printf("Error: %s:%d: unbalanced brackets in case class %s", relPath, m.Line, m.Name)
	}

	var insertions []Insertion
	for _, decl := range decls {
		if g.opts.SkipExisting && scala.HasObjectAfter(content, decl.End, decl.Name) {
			if g.opts.Verbose {
				log.Printf("%s:%d: object %s already exists, skipping", relPath, decl.Line, decl.Name)
			}
			continue
		}

		fields, bad := scala.ParseFields(decl.RawFieldList)
		for _, seg := range bad {
			rep.Add(report.Diagnostic{
				Kind:   report.KindUnparseableField,
				File:   relPath,
				Line:   decl.Line,
				Detail: fmt.Sprintf("case class %s: no depth-zero colon in segment %q, field omitted", decl.Name, seg),
			})
			log.Printf("Warning: %s:%d: case class %s: unparseable field segment %q", relPath, decl.Line, decl.Name, seg)
		}

		rep.RecordsFound++
		rep.ConstantsEmitted += len(fields)
		block := Render(decl.Name, fields, g.opts.Indent)
		insertions = append(insertions, Insertion{Offset: decl.End, Text: "\n\n" + block})
	}

	if len(insertions) == 0 {
		if g.cache != nil {
			g.cache.Update(path, content)
		}
		return
	}

	if g.opts.DryRun {
		fmt.Fprintf(g.out, "--- %s (dry run, not written)\n", relPath)
		for _, ins := range insertions {
			fmt.Fprint(g.out, ins.Text[2:]) // drop the separating blank line
		}
		if g.cache != nil {
			g.cache.Update(path, content)
		}
		return
	}

	updated := Apply(content, insertions)
	if err := WriteAtomic(path, updated); err != nil {
		rep.Add(report.Diagnostic{
			Kind:   report.KindWriteError,
			File:   relPath,
			Detail: err.Error(),
		})
		log.Printf("Error: failed to write %s: %v", relPath, err)
		return
	}
	rep.FilesModified++
	if g.opts.Verbose {
		log.Printf("%s: appended %d companion object(s)", relPath, len(insertions))
	}
	if g.cache != nil {
		g.cache.Update(path, updated)
	}
}
