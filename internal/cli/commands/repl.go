package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/ecltoml/internal/cli/output"
	"github.com/leapstack-labs/ecltoml/pkg/translate"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "ecl> "
	replContPrompt = " ..> "
	replSource     = "<repl>"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Translate ECL interactively",
		Long: `Start an interactive session. Lines are collected until a blank line,
then the collected text is translated and the TOML or the errors are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

// replSession buffers input lines and translates them on demand.
type replSession struct {
	buf   strings.Builder
	opts  translate.Options
	r     *output.Renderer
	snips bool
}

// feed handles one line of input. It reports whether the session should end.
func (s *replSession) feed(line string) (quit bool) {
	trimmed := strings.TrimSpace(line)

	if s.buf.Len() == 0 && strings.HasPrefix(trimmed, ".") && !strings.HasPrefix(trimmed, ".{") {
		return s.command(trimmed)
	}

	if trimmed == "" {
		if s.buf.Len() > 0 {
			s.translate()
		}
		return false
	}

	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	return false
}

// pending reports whether there is buffered input.
func (s *replSession) pending() bool {
	return s.buf.Len() > 0
}

func (s *replSession) translate() {
	src := s.buf.String()
	s.buf.Reset()

	res := translate.Run(src, s.opts)
	if !res.OK() {
		s.r.Diagnostics(replSource, src, res.Diagnostics, s.snips)
		return
	}
	if res.Output == "" {
		s.r.Muted("(no sections)")
		return
	}
	s.r.Printf("%s\n", res.Output)
}

func (s *replSession) command(line string) (quit bool) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.r.Writer())
	case ".clear":
		s.buf.Reset()
	case ".interpolate":
		if len(parts) != 2 || (parts[1] != "on" && parts[1] != "off") {
			s.r.Error("usage: .interpolate on|off")
			break
		}
		s.opts.Interpolate = parts[1] == "on"
		s.r.Muted("string interpolation " + parts[1])
	default:
		s.r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", parts[0]))
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help               Show this help message
  .clear              Discard the buffered input
  .interpolate on|off Toggle .{NAME}. substitution inside strings
  .quit / .exit       Exit the REPL

Tips:
  - Enter ECL lines, then a blank line to translate them
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := &replSession{
		opts:  cmdCtx.TranslateOptions(),
		r:     cmdCtx.Renderer,
		snips: cmdCtx.Cfg.Snippets,
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ECL to TOML REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			if session.pending() {
				session.translate()
			}
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if session.feed(line) {
			break
		}
		if session.pending() {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
	return nil
}

// historyFile returns the REPL history path, or empty to disable history.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "ecltoml")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".clear"),
		readline.PcItem(".interpolate", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
		readline.PcItem("def"),
	)
}
