package docweaver

import (
	"fmt"
)

// Position represents a position in a host document.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// positionAt converts a byte offset into a Position. Offsets past the end of
// the text clamp to the end.
func positionAt(text string, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Position{Line: line, Column: col}
}

// TagError is the base error type for annotation scanning failures. Line is
// the 1-based line of the offending marker, or 0 when the failure is not tied
// to a single line.
type TagError struct {
	Tag  string
	Line int
}

// TagNotFoundError reports that a file contains no start marker for the
// requested tag.
type TagNotFoundError struct {
	TagError
}

// Error implements the error interface.
func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("no start marker found for tag %q", e.Tag)
}

// UnterminatedTagError reports a start marker whose end marker never appears
// before the end of the file.
type UnterminatedTagError struct {
	TagError
}

// Error implements the error interface.
func (e *UnterminatedTagError) Error() string {
	return fmt.Sprintf("start marker for tag %q at line %d is never closed", e.Tag, e.Line)
}

// DuplicateStartError reports a second start marker for a tag that is still
// open. Same-tag nesting is not allowed.
type DuplicateStartError struct {
	TagError
}

// Error implements the error interface.
func (e *DuplicateStartError) Error() string {
	return fmt.Sprintf("duplicate start marker for tag %q at line %d: previous start is still open", e.Tag, e.Line)
}

// UnmatchedEndError reports an end marker with no open start marker for the
// same tag.
type UnmatchedEndError struct {
	TagError
}

// Error implements the error interface.
func (e *UnmatchedEndError) Error() string {
	return fmt.Sprintf("end marker for tag %q at line %d has no matching start marker", e.Tag, e.Line)
}

// DuplicateTagError reports two complete marker pairs for the same tag in one
// file. A tag must delimit exactly one region per file; picking either pair
// silently would make the import ambiguous.
type DuplicateTagError struct {
	TagError      // Line is the start line of the second pair
	FirstLine int // start line of the first pair
}

// Error implements the error interface.
func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("tag %q is defined more than once: regions start at lines %d and %d", e.Tag, e.FirstLine, e.Line)
}

// MalformedDirectiveError reports directive syntax that could not be parsed.
// The surrounding scan continues past it.
type MalformedDirectiveError struct {
	Raw    string   // the raw directive text as written
	Pos    Position // where the directive starts in the host document
	Reason string
}

// Error implements the error interface.
func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("malformed directive %q at %s: %s", e.Raw, e.Pos, e.Reason)
}

// PathEscapesRootError reports a directive whose target path resolves outside
// the configured project root.
type PathEscapesRootError struct {
	Path string // the resolved path
	Root string
}

// Error implements the error interface.
func (e *PathEscapesRootError) Error() string {
	return fmt.Sprintf("target path %q escapes project root %q", e.Path, e.Root)
}
