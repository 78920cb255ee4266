// Package config provides configuration management for the ecltoml CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`
	OutputFormat string `koanf:"output"`
	Strict       bool   `koanf:"strict"`
	Interpolate  bool   `koanf:"interpolate_strings"`
	Snippets     bool   `koanf:"snippets"`
	NoColor      bool   `koanf:"no_color"`

	Emit  EmitConfig  `koanf:"emit"`
	Watch WatchConfig `koanf:"watch"`
	Check CheckConfig `koanf:"check"`
}

// EmitConfig controls the TOML emitter.
type EmitConfig struct {
	Indent        int  `koanf:"indent"`
	StripComments bool `koanf:"strip_comments"`
}

// WatchConfig controls `translate --watch`.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// CheckConfig controls the check command.
type CheckConfig struct {
	// Jobs limits how many files are checked at once. Zero means one per CPU.
	Jobs int `koanf:"jobs"`
}

// Default configuration values.
const (
	DefaultLogLevel = "warn"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDebounce = 100 * time.Millisecond
	EnvPrefix       = "ECLTOML_"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
		Snippets:     true,
		Watch:        WatchConfig{Debounce: DefaultDebounce},
	}
}
