package config

import "time"

// Config represents the complete xml2rst configuration.
// It can be loaded from .xml2rst.yml with environment variable overrides.
type Config struct {
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Headers HeadersConfig `yaml:"headers" mapstructure:"headers"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// OutputConfig controls where and how pages are written.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`                 // root for index.rst and reference/
	Atomic     bool   `yaml:"atomic" mapstructure:"atomic"`           // write temp file then rename
	CreateDirs bool   `yaml:"create_dirs" mapstructure:"create_dirs"` // create reference/ when missing
}

// WatchConfig configures --watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before regenerating
}

// Debounce returns the debounce period as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// HeadersConfig configures the header audit.
type HeadersConfig struct {
	Patterns          []string `yaml:"patterns" mapstructure:"patterns"`                     // glob patterns for header files
	IgnoreIdentifiers []string `yaml:"ignore_identifiers" mapstructure:"ignore_identifiers"` // macros blanked before parsing
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // trace, debug, info, warn, error
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:        ".",
			Atomic:     true,
			CreateDirs: false,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
		Headers: HeadersConfig{
			Patterns: []string{"**/*.h"},
			IgnoreIdentifiers: []string{
				"OB_EXPORT",
				"OB_DEPRECATED",
				"OB_DEPRECATED_EXPORT",
				"OB_EXTENSION_API",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
