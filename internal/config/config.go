package config

// Config represents the complete casegen configuration.
// It can be loaded from .casegen.yml with environment variable overrides.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Generate GenerateConfig `yaml:"generate" mapstructure:"generate"`
	Watch    WatchConfig    `yaml:"watch" mapstructure:"watch"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Source []string `yaml:"source" mapstructure:"source"` // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// GenerateConfig controls companion-object rendering.
type GenerateConfig struct {
	Indent       string `yaml:"indent" mapstructure:"indent"`               // indentation inside the object body
	SkipExisting bool   `yaml:"skip_existing" mapstructure:"skip_existing"` // skip classes that already have a companion
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before regenerating
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Source: []string{
				"**/*.scala",
			},
			Ignore: []string{
				".git/**",
				".idea/**",
				".bloop/**",
				".metals/**",
				"target/**",
				"project/target/**",
			},
		},
		Generate: GenerateConfig{
			Indent:       "  ",
			SkipExisting: false,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// SourceExtensions extracts unique file extensions from the source patterns,
// with leading dot (e.g. []string{".scala"}). Used to filter watch events.
func (c *Config) SourceExtensions() []string {
	extMap := make(map[string]bool)
	for _, pattern := range c.Paths.Source {
		if ext := extractExtension(pattern); ext != "" {
			extMap[ext] = true
		}
	}

	extensions := make([]string, 0, len(extMap))
	for ext := range extMap {
		extensions = append(extensions, ext)
	}
	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Examples: "**/*.scala" -> ".scala", "*.sc" -> ".sc".
func extractExtension(pattern string) string {
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}
