package docweaver

import (
	"fmt"
	"strings"
)

// Diagnostic ties one failed directive to its location in the host document.
// Every field a user needs to act on the failure is carried here; nothing
// requires re-running with more verbosity.
type Diagnostic struct {
	Doc  string   // host document path
	Pos  Position // where the directive starts in the document
	Path string   // target path as written (empty for malformed directives)
	Tag  string
	Raw  string
	Err  error
}

// String renders the diagnostic as a single file:line:col message.
func (d Diagnostic) String() string {
	if d.Tag == "" {
		return fmt.Sprintf("%s:%d:%d: %v", d.Doc, d.Pos.Line, d.Pos.Column, d.Err)
	}
	return fmt.Sprintf("%s:%d:%d: importing tag %q from %q: %v", d.Doc, d.Pos.Line, d.Pos.Column, d.Tag, d.Path, d.Err)
}

// DiagnosticSink receives diagnostics as the engine produces them.
type DiagnosticSink interface {
	OnDiagnostic(d Diagnostic)
}

// DiagnosticSinkFunc adapts a function to the DiagnosticSink interface.
type DiagnosticSinkFunc func(d Diagnostic)

// OnDiagnostic implements DiagnosticSink.
func (f DiagnosticSinkFunc) OnDiagnostic(d Diagnostic) { f(d) }

// Report aggregates every diagnostic raised while processing one document.
// A failure for one directive never blocks the others; the report collects
// them all so the host can show them together.
type Report struct {
	Doc         string
	Diagnostics []Diagnostic
}

func (r *Report) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Ok reports whether the document processed without diagnostics.
func (r *Report) Ok() bool {
	return len(r.Diagnostics) == 0
}

// String renders the report one diagnostic per line, in document order.
func (r *Report) String() string {
	if r.Ok() {
		return ""
	}
	lines := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
