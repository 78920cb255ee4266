// Package translate runs the full pipeline: lex and parse, resolve constants,
// emit TOML. Phases are fail-fast: resolution runs only on an error-free
// parse, emission only on an error-free resolution.
package translate

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/format"
	"github.com/leapstack-labs/ecltoml/pkg/parser"
	"github.com/leapstack-labs/ecltoml/pkg/resolve"
	"github.com/leapstack-labs/ecltoml/pkg/token"
)

// Options configures a translation.
type Options struct {
	// Interpolate enables `.{NAME}.` substitution inside string literals.
	Interpolate bool
	// Indent is passed to the emitter.
	Indent int
	// StripComments leaves source comments out of the output.
	StripComments bool
	// Logger receives debug tracing. Nil discards.
	Logger *slog.Logger
}

// Result holds everything a translation produced.
type Result struct {
	// Output is the TOML text. Empty whenever Diagnostics is non-empty.
	Output string
	// Document is the parsed document, present even when parsing failed.
	Document *core.Document
	// Resolved is nil unless resolution succeeded.
	Resolved *core.ResolvedDocument
	// Comments collected by the lexer, in source order.
	Comments []*token.Comment
	// Diagnostics sorted by position.
	Diagnostics diag.List
}

// OK reports whether the translation produced output.
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Run translates src and returns the full result.
func Run(src string, opts Options) *Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run_id", uuid.NewString())

	res := &Result{}

	start := time.Now()
	p := parser.NewParser(src)
	res.Document = p.ParseDocument()
	res.Comments = p.Comments()
	res.Diagnostics = p.AllErrors()
	res.Diagnostics.Sort()
	logger.Debug("parsed",
		"sections", len(res.Document.Sections),
		"constants", len(res.Document.Constants),
		"errors", len(res.Diagnostics),
		"duration", time.Since(start))
	if res.Diagnostics.HasErrors() {
		return res
	}

	start = time.Now()
	resolveOpts := []resolve.Option{
		resolve.WithStringInterpolation(opts.Interpolate),
		resolve.WithLogger(logger),
	}
	if !opts.StripComments {
		resolveOpts = append(resolveOpts, resolve.WithComments(res.Comments))
	}
	resolved, errs := resolve.Resolve(res.Document, resolveOpts...)
	logger.Debug("resolved", "errors", len(errs), "duration", time.Since(start))
	if errs.HasErrors() {
		res.Diagnostics = errs
		return res
	}
	res.Resolved = resolved

	start = time.Now()
	res.Output = format.Format(resolved, format.Options{Indent: opts.Indent})
	logger.Debug("emitted", "bytes", len(res.Output), "duration", time.Since(start))
	return res
}

// Translate converts src to TOML. The error, when non-nil, is a sorted
// diag.List.
func Translate(src string, opts Options) (string, error) {
	res := Run(src, opts)
	if err := res.Diagnostics.Err(); err != nil {
		return "", err
	}
	return res.Output, nil
}
