package commands

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/leapstack-labs/ecltoml/internal/cli/output"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/format"
	"github.com/leapstack-labs/ecltoml/pkg/translate"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Files []string
}

// checkResult is the outcome of checking one file.
type checkResult struct {
	File        string
	Source      string
	Diagnostics diag.List
	Invalid     error // strict mode: output TOML readers refuse
}

func (c checkResult) ok() bool {
	return !c.Diagnostics.HasErrors() && c.Invalid == nil
}

func (c checkResult) status() string {
	if c.ok() {
		return "passed"
	}
	return "failed"
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <input>...",
		Short: "Report errors in ECL files without writing output",
		Long: `Translate each file and report every error found, without writing TOML.

Files are checked concurrently; results are reported in argument order
followed by a summary table.`,
		Example: `  # Check all files in a directory
  ecltoml check config/*.ecl

  # Machine-readable results
  ecltoml check --format json app.ecl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().Bool("strict", false, "Also reject output that TOML readers refuse")
	cmd.Flags().Bool("interpolate", false, "Replace .{NAME}. inside strings with constant values")
	cmd.Flags().IntP("jobs", "j", 0, "Files to check at once (default: number of CPUs)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	jobs := cmdCtx.Cfg.Check.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]checkResult, len(opts.Files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)

	for i, file := range opts.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			res := translate.Run(string(src), cmdCtx.TranslateOptions())
			result := checkResult{File: file, Source: string(src), Diagnostics: res.Diagnostics}
			if res.OK() && cmdCtx.Cfg.Strict {
				result.Invalid = format.Validate(res.Output)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.ok() {
			failed++
		}
	}
	cmdCtx.Logger.Debug("check finished", "files", len(results), "failed", failed, "jobs", jobs)

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]output.FileDiagnostics, 0, len(results))
		for _, res := range results {
			list := res.Diagnostics
			if list == nil {
				list = diag.List{}
			}
			out = append(out, output.FileDiagnostics{File: res.File, OK: res.ok(), Diagnostics: list})
		}
		if err := r.JSON(out); err != nil {
			return err
		}
	} else {
		renderCheckText(r, cmdCtx.Cfg.Snippets, results)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) have errors", ErrCheckFailed, failed, len(results))
	}
	return nil
}

func renderCheckText(r *output.Renderer, snippets bool, results []checkResult) {
	for _, res := range results {
		r.Diagnostics(res.File, res.Source, res.Diagnostics, snippets)
		if res.Invalid != nil {
			r.Error(fmt.Sprintf("%s: %v", res.File, res.Invalid))
		}
	}

	titleCaser := cases.Title(language.English)
	rows := make([][]any, 0, len(results))
	for _, res := range results {
		rows = append(rows, []any{
			res.File,
			titleCaser.String(res.status()),
			len(res.Diagnostics),
			kindSummary(res.Diagnostics),
		})
	}
	r.Table([]string{"File", "Status", "Errors", "Kinds"}, rows)
}

// kindSummary lists the distinct kinds in list with their counts,
// in first-seen order: "EmptyValue x2, InvalidChar".
func kindSummary(list diag.List) string {
	var order []diag.Kind
	counts := make(map[diag.Kind]int)
	for _, d := range list {
		if counts[d.Kind] == 0 {
			order = append(order, d.Kind)
		}
		counts[d.Kind]++
	}

	parts := make([]string, 0, len(order))
	for _, k := range order {
		if n := counts[k]; n > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", k, n))
		} else {
			parts = append(parts, k.String())
		}
	}
	return strings.Join(parts, ", ")
}
