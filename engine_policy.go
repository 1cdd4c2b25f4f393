package docweaver

import "log/slog"

// ErrorPolicy controls what a failed directive does to the rest of its
// document.
type ErrorPolicy int

const (
	// ReportAndContinue substitutes a visible placeholder for the failed
	// directive and keeps resolving the others.
	ReportAndContinue ErrorPolicy = iota
	// FailFast aborts the document on the first directive failure.
	FailFast
)

// Engine resolves import directives in host documents against annotated
// target files. It is safe for concurrent use across documents: processing
// keeps no state between calls.
type Engine struct {
	syntax      Syntax
	scanner     *directiveScanner
	read        FileReader
	policy      ErrorPolicy
	parallelism int
	root        string
	placeholder func(Directive, error) string
	sink        DiagnosticSink
	log         *slog.Logger
}
