package docweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PositionAt(t *testing.T) {
	text := "first line\nsecond line\nthird"

	t.Run("should report 1-based line and column", func(t *testing.T) {
		assert.Equal(t, Position{Line: 1, Column: 1}, positionAt(text, 0))
		assert.Equal(t, Position{Line: 1, Column: 6}, positionAt(text, 5))
		assert.Equal(t, Position{Line: 2, Column: 1}, positionAt(text, 11))
		assert.Equal(t, Position{Line: 3, Column: 3}, positionAt(text, 25))
	})

	t.Run("should clamp offsets past the end of the text", func(t *testing.T) {
		assert.Equal(t, positionAt(text, len(text)), positionAt(text, len(text)+10))
	})
}

func Test_ErrorMessages(t *testing.T) {
	t.Run("should name the tag and line in every marker error", func(t *testing.T) {
		cases := []struct {
			err  error
			want string
		}{
			{&TagNotFoundError{TagError{Tag: "a"}}, `no start marker found for tag "a"`},
			{&UnterminatedTagError{TagError{Tag: "a", Line: 3}}, `start marker for tag "a" at line 3 is never closed`},
			{&DuplicateStartError{TagError{Tag: "a", Line: 5}}, `duplicate start marker for tag "a" at line 5: previous start is still open`},
			{&UnmatchedEndError{TagError{Tag: "a", Line: 2}}, `end marker for tag "a" at line 2 has no matching start marker`},
			{&DuplicateTagError{TagError: TagError{Tag: "a", Line: 7}, FirstLine: 1}, `tag "a" is defined more than once: regions start at lines 1 and 7`},
		}
		for _, c := range cases {
			assert.Equal(t, c.want, c.err.Error())
		}
	})

	t.Run("should include raw text and position for malformed directives", func(t *testing.T) {
		err := &MalformedDirectiveError{
			Raw:    "{{#import nope",
			Pos:    Position{Line: 4, Column: 2},
			Reason: "missing closing }}",
		}
		assert.Equal(t, `malformed directive "{{#import nope" at line 4, column 2: missing closing }}`, err.Error())
	})
}

func Test_Diagnostic_String(t *testing.T) {
	t.Run("should render doc, position, tag and cause on one line", func(t *testing.T) {
		d := Diagnostic{
			Doc:  "src/intro.md",
			Pos:  Position{Line: 12, Column: 3},
			Path: "../lib.x",
			Tag:  "demo",
			Err:  &TagNotFoundError{TagError{Tag: "demo"}},
		}
		assert.Equal(t, `src/intro.md:12:3: importing tag "demo" from "../lib.x": no start marker found for tag "demo"`, d.String())
	})

	t.Run("should render malformed directives without a tag prefix", func(t *testing.T) {
		d := Diagnostic{
			Doc: "src/intro.md",
			Pos: Position{Line: 2, Column: 1},
			Err: &MalformedDirectiveError{Raw: "{{#import x", Pos: Position{Line: 2, Column: 1}, Reason: "missing closing }}"},
		}
		assert.Contains(t, d.String(), "src/intro.md:2:1:")
		assert.Contains(t, d.String(), "missing closing }}")
	})
}
