package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/translate"
)

// phaseDescriptions introduces each pipeline phase.
var phaseDescriptions = map[diag.Phase]string{
	diag.PhaseLex:     "Lexical errors come from characters the lexer cannot turn into tokens. The lexer skips the offending text and continues.",
	diag.PhaseParse:   "Syntax errors come from tokens in the wrong place. The parser reports the error, skips to the next section header or `def`, and continues. An out-of-range number is reported without skipping anything.",
	diag.PhaseResolve: "Resolution errors come from constant references. They are only reported when the file has no lexical or syntax errors.",
}

// kindDoc describes one diagnostic kind with an input that triggers it.
type kindDoc struct {
	Description string
	Example     string
}

var kindDocs = map[diag.Kind]kindDoc{
	diag.InvalidChar: {
		"A character that cannot start any token, or an unknown escape sequence in a string.",
		"[server]\nport = @8080\n",
	},
	diag.UnterminatedString: {
		"A string literal not closed before the end of its line.",
		"[server]\nname = \"api\n",
	},
	diag.UnexpectedToken: {
		"A token where the grammar expects something else, such as a second value after an assignment.",
		"[server]\nport = 80 443\n",
	},
	diag.MissingClosingDelimiter: {
		"An array `#(`, dictionary `$[` or reference `.{` that is never closed.",
		"[server]\nports = #(80, 443\n",
	},
	diag.InvalidSectionHeader: {
		"A section header without a name or without its closing `]`.",
		"[1]\nport = 80\n",
	},
	diag.InvalidConstantName: {
		"A `def` not followed by an identifier.",
		"def 1 := 2\n",
	},
	diag.EmptyValue: {
		"An `=`, `:=`, `:` or `,` with no value after it.",
		"[server]\nport =\n",
	},
	diag.DuplicateConstantName: {
		"A constant defined twice. The first definition is used.",
		"def PORT := 80\ndef PORT := 443\n",
	},
	diag.NumberOutOfRange: {
		"An integer outside the signed 64-bit range, or a decimal too large for a 64-bit float. TOML readers reject both.",
		"[server]\nmax_bytes = 99999999999999999999\n",
	},
	diag.UndefinedConstant: {
		"A reference to a constant that is never defined. Reported at every use.",
		"[server]\nport = .{PORT}.\n",
	},
	diag.CircularConstantReference: {
		"Constants whose definitions refer to each other. Reported once per cycle, at the reference that closes it.",
		"def A := .{B}.\ndef B := .{A}.\n",
	},
	diag.InvalidInterpolation: {
		"An array or dictionary constant referenced inside a string with interpolation enabled.",
		"def HOSTS := #(\"a\", \"b\")\n[server]\nurl = \"http://.{HOSTS}.\"\n",
	},
}

// generateErrorDocs generates the diagnostic reference page. Each example
// is translated so the page shows the message the tool prints today.
func generateErrorDocs(outDir string) error {
	log.Printf("Generating error docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Errors", "Every diagnostic ecltoml reports")
	w.GeneratedMarker()

	w.Header(1, "Errors")
	w.Paragraph("All errors in a file are reported in one run, sorted by position, as `file:line:column: error: message`. No TOML is written while any error remains.")

	kinds := diag.AllKinds()
	var rows [][]string
	for _, k := range kinds {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](#%s)", InlineCode(k.String()), anchor(k.String())),
			k.Phase().String(),
			kindDocs[k].Description,
		})
	}
	w.Table([]string{"Kind", "Phase", "Description"}, rows)

	phase := diag.Phase(-1)
	for _, k := range kinds {
		if k.Phase() != phase {
			phase = k.Phase()
			w.Header(2, capitalizeFirst(phase.String())+" errors")
			w.Paragraph(phaseDescriptions[phase])
		}

		doc, ok := kindDocs[k]
		if !ok {
			return fmt.Errorf("no documentation for %s", k)
		}
		w.Header(3, k.String())
		w.Paragraph(doc.Description)
		w.CodeBlock("text", doc.Example)

		res := translate.Run(doc.Example, translate.Options{Interpolate: true})
		var found *diag.Diagnostic
		for i := range res.Diagnostics {
			if res.Diagnostics[i].Kind == k {
				found = &res.Diagnostics[i]
				break
			}
		}
		if found == nil {
			return fmt.Errorf("example for %s does not produce it (got %v)", k, res.Diagnostics.Kinds())
		}
		w.CodeBlock("text", found.Format("app.ecl"))
	}

	filename := filepath.Join(outDir, "errors.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated errors.md")
	return nil
}

// anchor returns the heading anchor the docs site generates for s.
func anchor(s string) string {
	return strings.ToLower(s)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
