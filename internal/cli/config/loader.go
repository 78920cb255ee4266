package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store config in context.
type configKey struct{}

// configFileNames are searched in the working directory, in order.
var configFileNames = []string{"ecltoml.yaml", "ecltoml.yml", ".ecltoml.yaml", ".ecltoml.yml"}

// flagKeys maps command-line flag names onto config keys where the two differ.
// An empty key marks a flag that is not configuration.
var flagKeys = map[string]string{
	"output":         "", // translate -o names a file
	"config":         "",
	"check":          "", // translate --check, not the check section
	"watch":          "",
	"format":         "output",
	"interpolate":    "interpolate_strings",
	"indent":         "emit.indent",
	"strip-comments": "emit.strip_comments",
	"debounce":       "watch.debounce",
	"jobs":           "check.jobs",
}

// nestedPrefixes lists the config sections whose env vars need a "." after
// the section name: ECLTOML_EMIT_INDENT -> emit.indent.
var nestedPrefixes = []string{"emit_", "watch_", "check_"}

// Loaded is the outcome of Load.
type Loaded struct {
	Config *Config
	// File is the config file that was read, or empty.
	File string
}

// findConfigFile finds the config file to use.
// Priority: explicit path > ecltoml.yaml > ecltoml.yml > dotfile variants.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey transforms ECLTOML_LOG_LEVEL into log_level and ECLTOML_EMIT_INDENT
// into emit.indent.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, prefix := range nestedPrefixes {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			return strings.TrimSuffix(prefix, "_") + "." + rest
		}
	}
	return key
}

// FlagKey returns the config key a command-line flag sets, or "" when the
// flag is not configuration.
func FlagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// Load loads configuration from defaults, a YAML file, environment variables
// and flags. Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Loaded, error) {
	k := koanf.New(".")
	def := Default()

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"verbose":             def.Verbose,
		"log_level":           def.LogLevel,
		"output":              def.OutputFormat,
		"strict":              def.Strict,
		"interpolate_strings": def.Interpolate,
		"snippets":            def.Snippets,
		"no_color":            def.NoColor,
		"emit.indent":         def.Emit.Indent,
		"emit.strip_comments": def.Emit.StripComments,
		"watch.debounce":      def.Watch.Debounce.String(),
		"check.jobs":          def.Check.Jobs,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment variables (ECLTOML_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key := FlagKey(f.Name)
			if !f.Changed || key == "" {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Verbose && cfg.LogLevel == DefaultLogLevel {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Loaded{Config: &cfg, File: used}, nil
}

// NewLogger builds the CLI logger. Logs go to w as text at the configured level.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithLogger stores the logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithConfig stores the config in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context, falling back to defaults.
func GetConfig(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}
