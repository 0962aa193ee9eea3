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
	rootDir    string
	configFile string
}

// NewLoader creates a loader that searches rootDir for .xml2rst.yml, or
// reads configFile when it is not empty.
func NewLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (XML2RST_*)
// 2. Config file (.xml2rst.yml / .xml2rst.yaml, or the explicit file)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(".xml2rst")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// XML2RST_OUTPUT_DIR, XML2RST_LOG_LEVEL, ...
	v.SetEnvPrefix("XML2RST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("output.dir")
	v.BindEnv("output.atomic")
	v.BindEnv("output.create_dirs")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("log.level")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Only a missing search-path config is acceptable; an explicit file must exist.
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

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.atomic", defaults.Output.Atomic)
	v.SetDefault("output.create_dirs", defaults.Output.CreateDirs)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)

	v.SetDefault("headers.patterns", defaults.Headers.Patterns)
	v.SetDefault("headers.ignore_identifiers", defaults.Headers.IgnoreIdentifiers)

	v.SetDefault("log.level", defaults.Log.Level)
}

// LoadConfig is a convenience function that loads config for the current
// working directory.
func LoadConfig(configFile string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd, configFile).Load()
}
