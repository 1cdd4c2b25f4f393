package docweaver

import (
	"strings"
)

// MarkerKind distinguishes the two marker forms.
type MarkerKind int

const (
	MarkerStart MarkerKind = iota
	MarkerEnd
)

// Marker is one start/end annotation found in a target file. Line is the
// 0-based line index the marker was found on.
type Marker struct {
	Kind MarkerKind
	Tag  string
	Line int
}

// Region is the text delimited by one matched start/end marker pair.
// StartLine and EndLine are the 0-based line indices of the markers
// themselves; Lines holds the lines strictly between them, verbatim.
type Region struct {
	Tag       string
	StartLine int
	EndLine   int
	Lines     []string
}

// Content joins the region's lines. Marker lines are excluded and the body's
// original indentation is preserved; no trailing newline is appended, the
// caller splices the content into its own surrounding text.
func (r Region) Content() string {
	return strings.Join(r.Lines, "\n")
}

// Markers lists every annotation marker in contents, in file order. Lines
// that do not parse as markers are skipped; no pairing rules are enforced.
func (s Syntax) Markers(contents string) []Marker {
	var markers []Marker
	for i, line := range strings.Split(contents, "\n") {
		if m, ok := parseMarker(s.MarkerKeyword, line, i); ok {
			markers = append(markers, m)
		}
	}
	return markers
}

// Extract returns the content of the region tagged tag in contents.
//
// The scan enforces the marker pairing rules for the whole file, not just the
// requested tag: a file whose annotations are structurally broken is not
// trusted as an import source. Exactly one complete pair must exist for the
// requested tag; two complete pairs fail with DuplicateTagError rather than
// silently choosing one.
func (s Syntax) Extract(contents, tag string) (string, error) {
	regions, pending, err := scanMarkers(s.MarkerKeyword, contents)
	if err != nil {
		return "", err
	}

	found := regions[tag]
	openLine, open := pending[tag]

	switch {
	case len(found) == 0 && open:
		return "", &UnterminatedTagError{TagError{Tag: tag, Line: openLine + 1}}
	case len(found) == 0:
		return "", &TagNotFoundError{TagError{Tag: tag}}
	case len(found) > 1:
		return "", &DuplicateTagError{
			TagError:  TagError{Tag: tag, Line: found[1].StartLine + 1},
			FirstLine: found[0].StartLine + 1,
		}
	case open:
		// One complete pair plus a re-opened start: a second definition has
		// begun, so the tag is still ambiguous.
		return "", &DuplicateTagError{
			TagError:  TagError{Tag: tag, Line: openLine + 1},
			FirstLine: found[0].StartLine + 1,
		}
	}

	return found[0].Content(), nil
}

// scanMarkers walks contents line by line pairing start and end markers.
// It returns the complete regions grouped by tag and the start line of any
// tag still open at end of file. The pending table is local to the scan.
func scanMarkers(keyword, contents string) (map[string][]Region, map[string]int, error) {
	lines := strings.Split(contents, "\n")
	pending := make(map[string]int)
	regions := make(map[string][]Region)

	for i, line := range lines {
		m, ok := parseMarker(keyword, line, i)
		if !ok {
			continue
		}
		switch m.Kind {
		case MarkerStart:
			if _, isOpen := pending[m.Tag]; isOpen {
				return nil, nil, &DuplicateStartError{TagError{Tag: m.Tag, Line: i + 1}}
			}
			pending[m.Tag] = i
		case MarkerEnd:
			start, isOpen := pending[m.Tag]
			if !isOpen {
				return nil, nil, &UnmatchedEndError{TagError{Tag: m.Tag, Line: i + 1}}
			}
			delete(pending, m.Tag)
			regions[m.Tag] = append(regions[m.Tag], Region{
				Tag:       m.Tag,
				StartLine: start,
				EndLine:   i,
				Lines:     lines[start+1 : i],
			})
		}
	}

	return regions, pending, nil
}

// parseMarker recognizes `<keyword> start <tag>` and `<keyword> end <tag>` in
// a line regardless of the comment characters around them: the match runs
// against the trimmed line from the first occurrence of the keyword, so the
// same annotation works inside //, #, <!-- --> or any other comment syntax.
// Trailing characters after the tag (such as a comment closer) are ignored.
func parseMarker(keyword, line string, index int) (Marker, bool) {
	trimmed := strings.TrimSpace(line)
	at := strings.Index(trimmed, keyword)
	if at < 0 {
		return Marker{}, false
	}
	rest := trimmed[at+len(keyword):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return Marker{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return Marker{}, false
	}

	var kind MarkerKind
	switch fields[0] {
	case "start":
		kind = MarkerStart
	case "end":
		kind = MarkerEnd
	default:
		return Marker{}, false
	}

	return Marker{Kind: kind, Tag: fields[1], Line: index}, true
}
