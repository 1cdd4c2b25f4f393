package docweaver

import (
	"regexp"
	"strings"
)

// Directive is one import instruction found in a host document: the target
// path as written (relative to the host document), the tag naming the region
// to pull in, and the byte span the directive occupies in the document.
//
// An escaped directive (/{{#import …}}) is reported with Escaped set; it is
// never resolved, its span is rewritten to the literal directive text with
// the escape character dropped.
type Directive struct {
	Path    string
	Tag     string
	Start   int // byte offset of the directive's first byte
	End     int // byte offset one past the directive's last byte
	Raw     string
	Escaped bool
}

// directiveScanner finds one deployment's directive syntax in document text.
// The opener pattern is fixed per deployment, so it is compiled once when the
// engine is built.
type directiveScanner struct {
	keyword string
	opener  *regexp.Regexp
}

func newDirectiveScanner(keyword string) *directiveScanner {
	return &directiveScanner{
		keyword: keyword,
		opener:  regexp.MustCompile(`\{\{\s*#` + regexp.QuoteMeta(keyword) + `\s`),
	}
}

// scan walks the document once, in order, and returns every directive
// occurrence plus a malformed-syntax error for each occurrence that could not
// be parsed. Malformed occurrences never stop the scan; it resumes right
// after the broken opener so later directives are still discovered.
func (sc *directiveScanner) scan(text string) ([]Directive, []*MalformedDirectiveError) {
	var (
		directives []Directive
		malformed  []*MalformedDirectiveError
	)

	pos := 0
	for pos < len(text) {
		loc := sc.opener.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		bodyStart := pos + loc[1] - 1 // keep the whitespace that ended the opener match

		escaped := start > 0 && text[start-1] == '/'

		// A directive is a single line: the closing braces must appear before
		// the next newline.
		lineEnd := len(text)
		if nl := strings.IndexByte(text[bodyStart:], '\n'); nl >= 0 {
			lineEnd = bodyStart + nl
		}
		closeAt := strings.Index(text[bodyStart:lineEnd], "}}")
		if closeAt < 0 {
			if !escaped {
				malformed = append(malformed, &MalformedDirectiveError{
					Raw:    strings.TrimRight(text[start:lineEnd], "\r"),
					Pos:    positionAt(text, start),
					Reason: "missing closing }}",
				})
			}
			pos = lineEnd
			continue
		}
		end := bodyStart + closeAt + 2
		raw := text[start:end]
		pos = end

		if escaped {
			directives = append(directives, Directive{
				Start:   start - 1,
				End:     end,
				Raw:     text[start-1 : end],
				Escaped: true,
			})
			continue
		}

		// Everything up to the last @ is the path, so paths may themselves
		// contain @; everything after it is the tag.
		body := strings.TrimSpace(text[bodyStart : bodyStart+closeAt])
		at := strings.LastIndex(body, "@")
		if at < 0 {
			malformed = append(malformed, sc.malformedAt(text, start, raw, "missing @tag separator"))
			continue
		}
		path := strings.TrimSpace(body[:at])
		tag := strings.TrimSpace(body[at+1:])
		if path == "" {
			malformed = append(malformed, sc.malformedAt(text, start, raw, "empty target path"))
			continue
		}
		if tag == "" {
			malformed = append(malformed, sc.malformedAt(text, start, raw, "empty tag name"))
			continue
		}

		directives = append(directives, Directive{
			Path:  path,
			Tag:   tag,
			Start: start,
			End:   end,
			Raw:   raw,
		})
	}

	return directives, malformed
}

func (sc *directiveScanner) malformedAt(text string, offset int, raw, reason string) *MalformedDirectiveError {
	return &MalformedDirectiveError{
		Raw:    raw,
		Pos:    positionAt(text, offset),
		Reason: reason,
	}
}

// unescaped returns the literal text an escaped directive should render as:
// the directive with its leading escape character removed.
func (d Directive) unescaped() string {
	return strings.TrimPrefix(d.Raw, "/")
}
