package docweaver

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// NewEngine builds an engine for one deployment's syntax. The zero option
// set resolves directives sequentially, reads target files from the OS
// filesystem and replaces failed directives with a visible placeholder.
func NewEngine(syntax Syntax, opts ...func(*Engine)) (*Engine, error) {
	if err := syntax.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		syntax:      syntax,
		scanner:     newDirectiveScanner(syntax.DirectiveKeyword),
		read:        osFileReader,
		policy:      ReportAndContinue,
		parallelism: 1,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	e.placeholder = e.errorPlaceholder
	for _, o := range opts {
		o(e)
	}
	if e.parallelism < 1 {
		e.parallelism = 1
	}
	return e, nil
}

// WithErrorPolicy selects what a failed directive does to its document.
func WithErrorPolicy(p ErrorPolicy) func(*Engine) {
	return func(e *Engine) { e.policy = p }
}

// WithParallelism resolves up to n directives concurrently. Resolution order
// never affects the output: replacements are always applied in document span
// order.
func WithParallelism(n int) func(*Engine) {
	return func(e *Engine) { e.parallelism = n }
}

// WithFileReader substitutes the engine's source of target file contents.
func WithFileReader(r FileReader) func(*Engine) {
	return func(e *Engine) { e.read = r }
}

// WithRoot rejects directives whose target path resolves outside dir.
func WithRoot(dir string) func(*Engine) {
	return func(e *Engine) { e.root = dir }
}

// WithPlaceholder overrides the text substituted for a failed directive.
func WithPlaceholder(f func(d Directive, err error) string) func(*Engine) {
	return func(e *Engine) { e.placeholder = f }
}

// WithDiagnosticSink streams diagnostics to s as they are produced, in
// addition to collecting them in the returned Report.
func WithDiagnosticSink(s DiagnosticSink) func(*Engine) {
	return func(e *Engine) { e.sink = s }
}

// WithLogger enables debug logging.
func WithLogger(l *slog.Logger) func(*Engine) {
	return func(e *Engine) { e.log = l }
}

// resolved is one directive's outcome, either content to splice in or the
// error that prevented it.
type resolved struct {
	directive Directive
	content   string
	err       error
}

// Process rewrites one host document: every directive's span is replaced by
// the content of the tagged region it names. The document text itself is
// never mutated; a new string is returned.
//
// Directive failures are local: under ReportAndContinue each one becomes a
// diagnostic plus an inline placeholder, and the rest of the document still
// resolves. Under FailFast the first failure is returned as an error.
// Malformed directive syntax is always diagnostic-only and leaves the raw
// text in place.
func (e *Engine) Process(docPath, docText string) (string, *Report, error) {
	report := &Report{Doc: docPath}

	directives, malformed := e.scanner.scan(docText)
	e.log.Debug("scanned document", "doc", docPath, "directives", len(directives), "malformed", len(malformed))

	for _, m := range malformed {
		e.emit(report, Diagnostic{Doc: docPath, Pos: m.Pos, Raw: m.Raw, Err: m})
	}

	results := make([]resolved, len(directives))
	g := new(errgroup.Group)
	g.SetLimit(e.parallelism)
	for i, d := range directives {
		i, d := i, d
		g.Go(func() error {
			results[i] = e.resolve(docPath, d)
			return nil
		})
	}
	_ = g.Wait()

	// Replacements are applied strictly in document span order, whatever
	// order resolution finished in.
	reps := make([]replacement, 0, len(results))
	for _, r := range results {
		switch {
		case r.err == nil:
			reps = append(reps, replacement{start: r.directive.Start, end: r.directive.End, text: r.content})
		case e.policy == FailFast:
			e.emit(report, e.diagnostic(docPath, docText, r))
			return "", report, r.err
		default:
			e.emit(report, e.diagnostic(docPath, docText, r))
			reps = append(reps, replacement{start: r.directive.Start, end: r.directive.End, text: e.placeholder(r.directive, r.err)})
		}
	}

	return splice(docText, reps), report, nil
}

// resolve reads and extracts one directive's content. Each directive re-reads
// its target file; nothing is cached across directives or documents.
func (e *Engine) resolve(docPath string, d Directive) resolved {
	if d.Escaped {
		return resolved{directive: d, content: d.unescaped()}
	}

	path := resolvePath(docPath, d.Path)
	if e.root != "" && !insideRoot(e.root, path) {
		return resolved{directive: d, err: &PathEscapesRootError{Path: path, Root: e.root}}
	}

	data, err := e.read(path)
	if err != nil {
		return resolved{directive: d, err: fmt.Errorf("reading %s: %w", path, err)}
	}

	content, err := e.syntax.Extract(string(data), d.Tag)
	if err != nil {
		return resolved{directive: d, err: err}
	}

	e.log.Debug("resolved directive", "doc", docPath, "path", path, "tag", d.Tag)
	return resolved{directive: d, content: content}
}

func (e *Engine) diagnostic(docPath, docText string, r resolved) Diagnostic {
	return Diagnostic{
		Doc:  docPath,
		Pos:  positionAt(docText, r.directive.Start),
		Path: r.directive.Path,
		Tag:  r.directive.Tag,
		Raw:  r.directive.Raw,
		Err:  r.err,
	}
}

func (e *Engine) emit(report *Report, d Diagnostic) {
	report.add(d)
	if e.sink != nil {
		e.sink.OnDiagnostic(d)
	}
	e.log.Debug("diagnostic", "doc", d.Doc, "tag", d.Tag, "err", d.Err)
}

func (e *Engine) errorPlaceholder(d Directive, err error) string {
	return fmt.Sprintf("<<%s error: %v>>", e.syntax.DirectiveKeyword, err)
}
