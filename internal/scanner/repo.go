package scanner

import (
	"fmt"
	"os"
	"path/filepath"
)

// buildFiles are the top-level files that mark a directory as a Scala/JVM
// project root.
var buildFiles = []string{
	"build.sbt",
	"build.scala",
	"version.sbt",
	"pom.xml",
	"gradle.properties",
	"gradlew",
}

// ValidateProjectRoot performs sanity checks before the tool is allowed to
// modify files under root: the directory must exist, be source-controlled,
// and carry a recognized build file at the top level. This keeps generated
// code out of directories the user pointed at by accident.
func ValidateProjectRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}

	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		return fmt.Errorf("%s is not a git repository (no .git); use --unsafe to override", root)
	}

	for _, name := range buildFiles {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%s has no build file (%v) at the top level; use --unsafe to override",
		root, buildFiles)
}
