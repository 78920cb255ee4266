package main

import (
	"cmp"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/ecltoml/internal/cli"
	"github.com/leapstack-labs/ecltoml/internal/cli/commands"
	"github.com/leapstack-labs/ecltoml/internal/cli/config"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// exitCondition is an error a command returns after it has printed the
// details itself. The process exits with status 1 and prints nothing more.
type exitCondition struct {
	Err     error
	Meaning string
}

var exitConditions = []exitCondition{
	{commands.ErrTranslationFailed, "The input has errors. They were printed and no output was written."},
	{commands.ErrCheckFailed, "At least one of the checked files has errors."},
	{commands.ErrStaleOutput, "The output file differs from what the input translates to (`--check`)."},
}

// commandPhases lists the diagnostic phases each command can report. A
// command missing here reports no diagnostics.
var commandPhases = map[string][]diag.Phase{
	"translate": {diag.PhaseLex, diag.PhaseParse, diag.PhaseResolve},
	"check":     {diag.PhaseLex, diag.PhaseParse, diag.PhaseResolve},
	"repl":      {diag.PhaseLex, diag.PhaseParse, diag.PhaseResolve},
	"ast":       {diag.PhaseLex, diag.PhaseParse},
	"tokens":    {diag.PhaseLex},
}

// commandExits lists the exit conditions each command can end with.
var commandExits = map[string][]error{
	"translate": {commands.ErrTranslationFailed, commands.ErrStaleOutput},
	"check":     {commands.ErrCheckFailed},
	"ast":       {commands.ErrTranslationFailed},
	"tokens":    {commands.ErrTranslationFailed},
}

// documented returns the commands that get a page, in registration order.
func documented(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// generateCLIDocs writes index.md and one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index": cliIndex(root)}
	for _, cmd := range documented(root) {
		pages[cmd.Name()] = commandPage(cmd)
	}

	for name, page := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name+".md"), page, 0600); err != nil {
			return fmt.Errorf("failed to write %s.md: %w", name, err)
		}
		log.Printf("  Generated %s.md", name)
	}
	return nil
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for ecltoml")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("ecltoml translates ECL configuration files to TOML. It can also print the token stream and the parsed tree of a file, and list every error in it.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/ecltoml/cmd/ecltoml@latest\necltoml <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documented(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
			phaseList(commandPhases[cmd.Name()]),
		})
	}
	w.Table([]string{"Command", "Description", "Reports"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key has an `ECLTOML_` variable. Flags take precedence over environment variables, which take precedence over `ecltoml.yaml`.")
	var env [][]string
	for _, f := range getConfigSchema() {
		env = append(env, []string{InlineCode(f.Env), f.Description})
	}
	w.Table([]string{"Variable", "Description"}, env)

	w.Header(2, "Exit Codes")
	var all []error
	for _, c := range exitConditions {
		all = append(all, c.Err)
	}
	writeExitTable(w, all)

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	name := cmd.Name()
	w := NewMarkdownWriter()
	w.Frontmatter(name, cmd.Short)
	w.GeneratedMarker()

	w.Header(1, name)
	w.Paragraph(cmp.Or(cmd.Long, cmd.Short))

	w.Header(2, "Usage")
	use := cmd.UseLine()
	if !strings.HasPrefix(use, "ecltoml") {
		use = "ecltoml " + use
	}
	w.CodeBlock("bash", use)

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if phases := commandPhases[name]; len(phases) > 0 {
		w.Header(2, "Diagnostics")
		w.Paragraph(fmt.Sprintf("%s reports %s errors, every one in a single run, sorted by position.",
			InlineCode(name), phaseList(phases)))
		var rows [][]string
		for _, k := range diag.AllKinds() {
			if slices.Contains(phases, k.Phase()) {
				rows = append(rows, []string{
					fmt.Sprintf("[%s](/reference/errors#%s)", InlineCode(k.String()), anchor(k.String())),
					k.Phase().String(),
				})
			}
		}
		w.Table([]string{"Kind", "Phase"}, rows)
	}

	w.Header(2, "Exit Codes")
	writeExitTable(w, commandExits[name])

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return w.Bytes()
}

// writeExitTable writes the exit codes of a command that can end with errs.
func writeExitTable(w *MarkdownWriter, errs []error) {
	rows := [][]string{{InlineCode("0"), "", "Success"}}
	for _, c := range exitConditions {
		if !slices.ContainsFunc(errs, func(err error) bool { return errors.Is(c.Err, err) }) {
			continue
		}
		rows = append(rows, []string{InlineCode("1"), InlineCode(c.Err.Error()), c.Meaning})
	}
	rows = append(rows, []string{InlineCode("1"), "", "Anything else, such as an unreadable file, a bad flag or an invalid configuration. The error is printed after `Error:`."})
	w.Table([]string{"Code", "Error", "Meaning"}, rows)
}

// writeFlagsTable writes one row per visible flag, with the configuration
// key it overrides when there is one.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		if def != "" && f.Value.Type() == "string" {
			def = InlineCode(def)
		}
		key := config.FlagKey(f.Name)
		if _, ok := configDescriptions[key]; ok {
			key = InlineCode(key)
		} else {
			key = ""
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, key, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Config key", "Description"}, rows)
}

// phaseList renders phases as "lex, parse and resolve".
func phaseList(phases []diag.Phase) string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.String()
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return strings.TrimSpace(example)
	}
	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
