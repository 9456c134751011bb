package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scalatools/casegen/internal/config"
	"github.com/scalatools/casegen/internal/generator"
	"github.com/scalatools/casegen/internal/report"
	"github.com/scalatools/casegen/internal/scanner"
	"github.com/scalatools/casegen/internal/watcher"
)

var (
	dryRunFlag       bool
	quietFlag        bool
	watchFlag        bool
	skipExistingFlag bool
	unsafeFlag       bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Scan a Scala tree and append field-name companion objects",
	Long: `Generate walks the given repository root (default: current directory),
finds every case class declaration, and appends a companion object binding
each field name to itself as a String constant:

  case class AliasInfo(alias: String, mcc_restriction: Seq[Int])

  object AliasInfo {
    val alias: String = "alias"
    val mcc_restriction: String = "mcc_restriction"
  }

Examples:
  # Generate in the current repository
  casegen generate

  # Preview without writing
  casegen generate --dry-run /path/to/repo

  # Keep companions up to date while editing
  casegen generate --watch --skip-existing
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "d", false, "Report and print generated blocks, write nothing")
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
	generateCmd.Flags().BoolVar(&skipExistingFlag, "skip-existing", false, "Skip case classes that already have a companion object")
	generateCmd.Flags().BoolVarP(&unsafeFlag, "unsafe", "u", false, "Skip the repository sanity check")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Stopping...")
		cancel()
	}()

	// Determine root directory
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if len(args) == 1 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid root path %q: %w", args[0], err)
		}
	}

	cfg, err := config.LoadConfigFromFile(rootDir, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("skip-existing") {
		cfg.Generate.SkipExisting = skipExistingFlag
	}

	// Refuse to touch directories that don't look like a Scala repository.
	if !unsafeFlag {
		if err := scanner.ValidateProjectRoot(rootDir); err != nil {
			return err
		}
	}

	discovery, err := scanner.NewDiscovery(rootDir, cfg.Paths.Source, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("invalid path patterns: %w", err)
	}

	gen := generator.New(generator.Options{
		RootDir:      rootDir,
		DryRun:       dryRunFlag,
		SkipExisting: cfg.Generate.SkipExisting,
		Indent:       cfg.Generate.Indent,
		Verbose:      verbose,
	}, discovery, NewCLIProgressReporter(quietFlag))

	if watchFlag {
		return runWatch(ctx, gen, discovery, cfg, rootDir)
	}

	rep, err := gen.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return err
	}
	return finish(rep)
}

// runWatch performs an initial full pass, then regenerates for changed files
// until the context is cancelled. The final exit code aggregates every pass.
func runWatch(ctx context.Context, gen *generator.Generator, discovery *scanner.Discovery, cfg *config.Config, rootDir string) error {
	cache, err := watcher.NewChangeCache(10_000)
	if err != nil {
		return fmt.Errorf("failed to create change cache: %w", err)
	}
	defer cache.Close()
	gen.SetChangeCache(cache)

	total := report.New()

	rep, err := gen.Run(ctx)
	if rep != nil {
		total.Merge(rep)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(rootDir, cfg.SourceExtensions(),
		time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	events := make(chan []string, 16)
	if err := fw.Start(ctx, func(files []string) {
		select {
		case events <- files:
		case <-ctx.Done():
		}
	}); err != nil {
		fw.Stop()
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	if !quietFlag {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}

	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
		case changed := <-events:
			// Watch events arrive as absolute paths; keep only files the
			// discovery patterns would have yielded.
			files := changed[:0]
			for _, f := range changed {
				rel, err := filepath.Rel(rootDir, f)
				if err == nil && discovery.Matches(rel) {
					files = append(files, f)
				}
			}
			if len(files) == 0 {
				continue
			}
			rep, err := gen.ProcessFiles(ctx, files)
			if rep != nil {
				total.Merge(rep)
			}
			if err != nil && ctx.Err() == nil {
				fw.Stop()
				return err
			}
		}
	}

	fw.Stop()
	return finish(total)
}

// finish prints the run summary and maps fatal diagnostics to a non-zero
// process exit.
func finish(rep *report.Report) error {
	if !quietFlag {
		fmt.Fprint(os.Stderr, rep.Summary())
	}
	if rep.ExitCode() != 0 {
		return fmt.Errorf("completed with %d fatal diagnostic(s)", rep.FatalCount())
	}
	return nil
}
