package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/ecltoml/internal/cli/config"
	"github.com/leapstack-labs/ecltoml/internal/cli/output"
	"github.com/leapstack-labs/ecltoml/pkg/translate"
	"github.com/spf13/cobra"
)

// stdinName is the input argument that reads from standard input.
const stdinName = "-"

// Errors returned when a command ran but the input had defects. The
// defects themselves have already been reported.
var (
	ErrTranslationFailed = errors.New("translation failed")
	ErrCheckFailed       = errors.New("check failed")
	ErrStaleOutput       = errors.New("output is out of date")
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the config and logger the
// root command stored in the context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(),
		output.Mode(cfg.OutputFormat), output.WithNoColor(cfg.NoColor))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// TranslateOptions returns the pipeline options selected by the config.
func (c *CommandContext) TranslateOptions() translate.Options {
	return translate.Options{
		Interpolate:   c.Cfg.Interpolate,
		Indent:        c.Cfg.Emit.Indent,
		StripComments: c.Cfg.Emit.StripComments,
		Logger:        c.Logger,
	}
}

// readSource reads path, or standard input when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// displayName is the name diagnostics use for path.
func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}
