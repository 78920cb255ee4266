package commands

import (
	"fmt"

	"github.com/leapstack-labs/ecltoml/internal/cli/output"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/parser"
	"github.com/leapstack-labs/ecltoml/pkg/token"
	"github.com/spf13/cobra"
)

// tokenDump is the JSON form of the tokens command.
type tokenDump struct {
	Tokens      []token.Token `json:"tokens"`
	Diagnostics diag.List     `json:"diagnostics"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <input>",
		Short: "Print the token stream of an ECL file",
		Long: `Print every token the lexer produces, with its position.

Lexical errors are reported after the tokens.`,
		Example: `  ecltoml tokens app.ecl
  ecltoml tokens --format json app.ecl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, input string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	name := displayName(input)

	src, err := readSource(cmd, input)
	if err != nil {
		return err
	}

	lexer := parser.NewLexer(src)
	var tokens []token.Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	errs := lexer.Errors()

	if r.EffectiveMode() == output.ModeJSON {
		list := errs
		if list == nil {
			list = diag.List{}
		}
		if err := r.JSON(tokenDump{Tokens: tokens, Diagnostics: list}); err != nil {
			return err
		}
	} else {
		rows := make([][]any, 0, len(tokens))
		for _, tok := range tokens {
			rows = append(rows, []any{tok.Pos.String(), tok.Type.String(), fmt.Sprintf("%q", tok.Literal)})
		}
		r.Table([]string{"Pos", "Type", "Literal"}, rows)
	}

	if errs.HasErrors() {
		if r.EffectiveMode() != output.ModeJSON {
			r.Diagnostics(name, src, errs, cmdCtx.Cfg.Snippets)
		}
		return fmt.Errorf("%w: %d lexical error(s) in %s", ErrTranslationFailed, len(errs), name)
	}
	return nil
}
