package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Validate checks a configuration for values the pipeline cannot work with.
func Validate(cfg *Config) error {
	if len(cfg.Paths.Source) == 0 {
		return fmt.Errorf("paths.source must contain at least one pattern")
	}

	for _, pattern := range cfg.Paths.Source {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("paths.source pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range cfg.Paths.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("paths.ignore pattern %q: %w", pattern, err)
		}
	}

	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", cfg.Watch.DebounceMs)
	}

	return nil
}
