package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/leapstack-labs/ecltoml/internal/cli/config"
)

// configDescriptions documents each configuration key.
var configDescriptions = map[string]string{
	"verbose":             "Enable debug logging",
	"log_level":           "Log level: debug, info, warn, error",
	"output":              "Output format: auto, text, markdown, json",
	"strict":              "Reject output that TOML readers refuse (repeated sections or keys)",
	"interpolate_strings": "Replace .{NAME}. inside string literals with constant values",
	"snippets":            "Show source snippets under errors",
	"no_color":            "Disable colored output",
	"emit.indent":         "Spaces to indent assignments under section headers (0-8)",
	"emit.strip_comments": "Leave source comments out of the output",
	"watch.debounce":      "Delay before re-translating in watch mode",
	"check.jobs":          "Files checked at once by the check command (0: one per CPU)",
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Env         string
	Description string
}

// getConfigSchema walks config.Config by its koanf tags so the reference
// cannot drift from the loader.
func getConfigSchema() []ConfigField {
	var fields []ConfigField
	var walk func(v reflect.Value, prefix string)
	walk = func(v reflect.Value, prefix string) {
		t := v.Type()
		for i := range t.NumField() {
			f := t.Field(i)
			key := prefix + f.Tag.Get("koanf")
			fv := v.Field(i)
			if f.Type.Kind() == reflect.Struct {
				walk(fv, key+".")
				continue
			}

			desc, ok := configDescriptions[key]
			if !ok {
				log.Printf("  warning: no description for config key %q", key)
			}
			fields = append(fields, ConfigField{
				Key:         key,
				Type:        fieldType(f.Type),
				Default:     fmt.Sprint(fv.Interface()),
				Env:         config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_")),
				Description: desc,
			})
		}
	}
	walk(reflect.ValueOf(*config.Default()), "")
	return fields
}

func fieldType(t reflect.Type) string {
	if t == reflect.TypeOf(time.Duration(0)) {
		return "duration"
	}
	return t.Kind().String()
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "ecltoml configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("ecltoml reads `ecltoml.yaml` (or `ecltoml.yml`, `.ecltoml.yaml`, `.ecltoml.yml`) from the working directory, or the file named by `--config`.")
	w.Paragraph("Precedence, highest first: command-line flags, `ECLTOML_` environment variables, the config file, defaults.")

	w.Header(2, "Keys")
	headers := []string{"Key", "Type", "Default", "Environment", "Description"}
	var rows [][]string
	for _, f := range getConfigSchema() {
		rows = append(rows, []string{
			InlineCode(f.Key),
			f.Type,
			InlineCode(f.Default),
			InlineCode(f.Env),
			f.Description,
		})
	}
	w.Table(headers, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `# ecltoml.yaml
log_level: info
output: text
strict: true
interpolate_strings: true

emit:
  indent: 2
  strip_comments: false

watch:
  debounce: 250ms

check:
  jobs: 4`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
