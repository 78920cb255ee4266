package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/ecltoml/internal/cli/output"
	"github.com/leapstack-labs/ecltoml/pkg/format"
	"github.com/leapstack-labs/ecltoml/pkg/translate"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

// TranslateOptions holds options for the translate command.
type TranslateOptions struct {
	Input  string // Source file, "-" for stdin
	Output string // Destination file, empty or "-" for stdout
	Check  bool   // Compare with Output instead of writing it
	Watch  bool   // Re-translate whenever Input changes
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand() *cobra.Command {
	opts := &TranslateOptions{}
	cmd := &cobra.Command{
		Use:   "translate <input>",
		Short: "Translate an ECL file to TOML",
		Long: `Translate an ECL configuration file to TOML.

All errors in the input are reported, sorted by position. When there is
any error no output is written and an existing output file is left as is.`,
		Example: `  # Print TOML to stdout
  ecltoml translate app.ecl

  # Write to a file
  ecltoml translate app.ecl -o app.toml

  # Fail when app.toml is not what app.ecl translates to
  ecltoml translate app.ecl -o app.toml --check

  # Re-translate on every save
  ecltoml translate app.ecl -o app.toml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return runTranslate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Compare with the output file and show a diff instead of writing")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch the input file and re-translate on change")
	cmd.Flags().Bool("strict", false, "Reject output that TOML readers refuse (repeated sections or keys)")
	cmd.Flags().Bool("interpolate", false, "Replace .{NAME}. inside strings with constant values")
	cmd.Flags().Int("indent", 0, "Spaces to indent assignments under section headers")
	cmd.Flags().Bool("strip-comments", false, "Leave source comments out of the output")
	cmd.Flags().Duration("debounce", 0, "Delay before re-translating in watch mode (default 100ms)")

	return cmd
}

func runTranslate(cmd *cobra.Command, opts *TranslateOptions) error {
	if opts.Check && (opts.Output == "" || opts.Output == stdinName) {
		return fmt.Errorf("--check needs an output file (-o)")
	}
	if opts.Watch && opts.Input == stdinName {
		return fmt.Errorf("--watch needs an input file, not stdin")
	}

	cmdCtx := NewCommandContext(cmd)
	if opts.Watch {
		return runWatch(cmd.Context(), cmdCtx, opts.Input, func() error {
			return translateOnce(cmd, cmdCtx, opts)
		})
	}
	return translateOnce(cmd, cmdCtx, opts)
}

// translateOnce runs the pipeline on opts.Input and delivers the result.
func translateOnce(cmd *cobra.Command, cmdCtx *CommandContext, opts *TranslateOptions) error {
	r := cmdCtx.Renderer
	name := displayName(opts.Input)

	src, err := readSource(cmd, opts.Input)
	if err != nil {
		return err
	}

	res := translate.Run(src, cmdCtx.TranslateOptions())
	if !res.OK() {
		r.Diagnostics(name, src, res.Diagnostics, cmdCtx.Cfg.Snippets)
		return fmt.Errorf("%w: %d error(s) in %s", ErrTranslationFailed, len(res.Diagnostics), name)
	}

	if cmdCtx.Cfg.Strict {
		if err := format.Validate(res.Output); err != nil {
			r.Error(fmt.Sprintf("%s: %v", name, err))
			return fmt.Errorf("%w: %s", ErrTranslationFailed, name)
		}
	}

	if opts.Check {
		return checkOutput(r, opts.Output, res.Output)
	}

	if opts.Output == "" || opts.Output == stdinName {
		_, err := fmt.Fprint(r.Writer(), res.Output)
		return err
	}

	if err := writeFileAtomic(opts.Output, []byte(res.Output)); err != nil {
		return err
	}
	cmdCtx.Logger.Info("translated", "input", name, "output", opts.Output, "bytes", len(res.Output))

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.FileDiagnostics{File: name, OK: true, Diagnostics: res.Diagnostics})
	}
	r.Success(fmt.Sprintf("%s -> %s", name, opts.Output))
	return nil
}

// checkOutput compares the translation with the file at path and prints a
// unified diff when they differ.
func checkOutput(r *output.Renderer, path, translated string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if string(existing) == translated {
		r.Success(path + " is up to date")
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(translated),
		FromFile: path,
		ToFile:   path + " (translated)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", path, err)
	}
	r.Printf("%s", diff)
	return fmt.Errorf("%w: %s", ErrStaleOutput, path)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
