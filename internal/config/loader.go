package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	cfgFile string // explicit config file path, overrides search
}

// NewLoader creates a new configuration loader for the given root directory.
// cfgFile, when non-empty, names an explicit config file instead of the
// default search locations.
func NewLoader(rootDir, cfgFile string) Loader {
	return &loader{
		rootDir: rootDir,
		cfgFile: cfgFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CASEGEN_*)
// 2. Config file (.casegen.yml in the root directory, then $HOME)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.cfgFile != "" {
		v.SetConfigFile(l.cfgFile)
	} else {
		v.SetConfigName(".casegen")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	// Enable environment variable overrides, e.g. CASEGEN_GENERATE_INDENT.
	v.SetEnvPrefix("CASEGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("generate.indent")
	v.BindEnv("generate.skip_existing")
	v.BindEnv("watch.debounce_ms")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.source", defaults.Paths.Source)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("generate.indent", defaults.Generate.Indent)
	v.SetDefault("generate.skip_existing", defaults.Generate.SkipExisting)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
}

// LoadConfigFromDir loads configuration rooted at a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir, "").Load()
}

// LoadConfigFromFile loads configuration from an explicit file.
func LoadConfigFromFile(rootDir, cfgFile string) (*Config, error) {
	return NewLoader(rootDir, cfgFile).Load()
}
