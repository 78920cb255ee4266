package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/ecltoml/internal/cli/output"
	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/parser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <input>",
		Short: "Print the parsed document of an ECL file",
		Long: `Print the syntax tree of an ECL file as YAML (or JSON with --format json).

Constant references are shown unresolved. When the input has errors the
tree built by error recovery is printed and the errors are reported.`,
		Example: `  ecltoml ast app.ecl
  ecltoml ast --format json app.ecl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, args[0])
		},
	}
}

// astDocument is the dump form of core.Document.
type astDocument struct {
	Constants []astConstant `json:"constants" yaml:"constants"`
	Sections  []astSection  `json:"sections" yaml:"sections"`
}

type astConstant struct {
	Name  string    `json:"name" yaml:"name"`
	Pos   string    `json:"pos" yaml:"pos"`
	Value *astValue `json:"value" yaml:"value"`
}

type astSection struct {
	Name        string          `json:"name" yaml:"name"`
	Pos         string          `json:"pos" yaml:"pos"`
	Assignments []astAssignment `json:"assignments" yaml:"assignments"`
}

type astAssignment struct {
	Key   string    `json:"key" yaml:"key"`
	Pos   string    `json:"pos" yaml:"pos"`
	Value *astValue `json:"value" yaml:"value"`
}

type astValue struct {
	Type    string          `json:"type" yaml:"type"`
	Pos     string          `json:"pos" yaml:"pos"`
	Value   *string         `json:"value,omitempty" yaml:"value,omitempty"`
	Ref     string          `json:"ref,omitempty" yaml:"ref,omitempty"`
	Elems   []*astValue     `json:"elems,omitempty" yaml:"elems,omitempty"`
	Entries []astAssignment `json:"entries,omitempty" yaml:"entries,omitempty"`
}

func runAST(cmd *cobra.Command, input string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	name := displayName(input)

	src, err := readSource(cmd, input)
	if err != nil {
		return err
	}

	doc, errs := parser.Parse(src)
	dump := dumpDocument(doc)

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(dump); err != nil {
			return err
		}
	} else {
		enc := yaml.NewEncoder(r.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("failed to encode ast: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode ast: %w", err)
		}
	}

	if errs.HasErrors() {
		if r.EffectiveMode() != output.ModeJSON {
			r.Diagnostics(name, src, errs, cmdCtx.Cfg.Snippets)
		}
		return fmt.Errorf("%w: %d error(s) in %s", ErrTranslationFailed, len(errs), name)
	}
	return nil
}

func dumpDocument(doc *core.Document) astDocument {
	out := astDocument{
		Constants: make([]astConstant, 0, len(doc.Constants)),
		Sections:  make([]astSection, 0, len(doc.Sections)),
	}
	for _, c := range doc.Constants {
		out.Constants = append(out.Constants, astConstant{
			Name:  c.Name,
			Pos:   c.NamePos.String(),
			Value: dumpValue(c.Value),
		})
	}
	for _, s := range doc.Sections {
		section := astSection{Name: s.Name, Pos: s.NamePos.String(), Assignments: []astAssignment{}}
		for _, a := range s.Assignments {
			section.Assignments = append(section.Assignments, astAssignment{
				Key:   a.Key,
				Pos:   a.KeyPos.String(),
				Value: dumpValue(a.Value),
			})
		}
		out.Sections = append(out.Sections, section)
	}
	return out
}

func dumpValue(v core.Value) *astValue {
	out := &astValue{Type: core.TypeName(v), Pos: v.Pos().String()}
	switch v := v.(type) {
	case *core.String:
		out.Value = &v.Value
	case *core.Number:
		out.Value = &v.Raw
	case *core.Bool:
		text := strconv.FormatBool(v.Value)
		out.Value = &text
	case *core.Array:
		for _, e := range v.Elems {
			out.Elems = append(out.Elems, dumpValue(e))
		}
	case *core.Dict:
		for _, e := range v.Entries {
			out.Entries = append(out.Entries, astAssignment{
				Key:   e.Key,
				Pos:   e.KeyPos.String(),
				Value: dumpValue(e.Value),
			})
		}
	case *core.ConstRef:
		out.Ref = v.Name
	}
	return out
}
