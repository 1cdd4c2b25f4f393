package docweaver

import (
	"strings"
)

// replacement is one span of the host document and the text that takes its
// place.
type replacement struct {
	start int
	end   int
	text  string
}

// splice rewrites doc in a single left-to-right pass: bytes outside the
// replaced spans are copied verbatim, replacement text is emitted in place of
// each span, and replacement text is never re-scanned for directives.
// Spans must be sorted by start offset and non-overlapping; directive syntax
// cannot nest inside another directive's raw text, so the scanner always
// produces spans that satisfy this.
func splice(doc string, reps []replacement) string {
	if len(reps) == 0 {
		return doc
	}

	var b strings.Builder
	pos := 0
	for _, r := range reps {
		if r.start < pos || r.end > len(doc) {
			// Out-of-order or overlapping span: keep the document bytes
			// rather than corrupt the output.
			continue
		}
		b.WriteString(doc[pos:r.start])
		b.WriteString(r.text)
		pos = r.end
	}
	b.WriteString(doc[pos:])
	return b.String()
}
