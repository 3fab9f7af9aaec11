package parser

import (
	"io"
	"os"

	"github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/internal/config"
)

// defaultMaxRecursionDepth is the "Maximum recursion depth (512) exceeded"
// ceiling every recursive descent passes through.
const defaultMaxRecursionDepth = 512

// Opt configures a Parse call.
type Opt func(*Options)

// Options holds parser configuration. Parse starts from defaultOptions, not
// the zero value: a 512-level recursion ceiling, no attached error sink
// (errors surface on os.Stderr), first-error-wins diagnostics.
type Options struct {
	maxRecursionDepth int
	sink              *errors.Sink
	diagnostics       io.Writer
	accumulate        bool
}

func defaultOptions() Options {
	return Options{
		maxRecursionDepth: defaultMaxRecursionDepth,
		diagnostics:       os.Stderr,
	}
}

// WithErrorSink attaches a sink that receives the first structured parse
// error. Without one, the parser writes to the diagnostics writer instead.
func WithErrorSink(sink *errors.Sink) Opt {
	return func(o *Options) { o.sink = sink }
}

// WithDiagnostics overrides where errors go when no sink is attached.
func WithDiagnostics(w io.Writer) Opt {
	return func(o *Options) { o.diagnostics = w }
}

// WithMaxRecursionDepth overrides the default 512-level recursion ceiling.
func WithMaxRecursionDepth(depth int) Opt {
	return func(o *Options) {
		if depth > 0 {
			o.maxRecursionDepth = depth
		}
	}
}

// WithConfigJSON validates raw against the parser configuration schema
// (internal/config) and applies any recursion-depth override and
// diagnostics mode it specifies.
func WithConfigJSON(raw []byte) (Opt, error) {
	doc, err := config.Parse(raw)
	if err != nil {
		return nil, err
	}
	return func(o *Options) {
		if doc.MaxRecursionDepth > 0 {
			o.maxRecursionDepth = doc.MaxRecursionDepth
		}
		if doc.DiagnosticsMode == "accumulate" {
			o.accumulate = true
		}
	}, nil
}
