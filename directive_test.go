package docweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DirectiveScanner(t *testing.T) {
	sc := newDirectiveScanner("import")

	t.Run("should parse path, tag and byte span of a directive", func(t *testing.T) {
		doc := "before {{#import ../lib.x@demo}} after"

		directives, malformed := sc.scan(doc)
		require.Empty(t, malformed)
		require.Len(t, directives, 1)

		d := directives[0]
		assert.Equal(t, "../lib.x", d.Path)
		assert.Equal(t, "demo", d.Tag)
		assert.Equal(t, "{{#import ../lib.x@demo}}", d.Raw)
		assert.Equal(t, d.Raw, doc[d.Start:d.End])
	})

	t.Run("should split path and tag at the last @", func(t *testing.T) {
		directives, malformed := sc.scan("{{#import notes@v2/file.txt@section}}")
		require.Empty(t, malformed)
		require.Len(t, directives, 1)
		assert.Equal(t, "notes@v2/file.txt", directives[0].Path)
		assert.Equal(t, "section", directives[0].Tag)
	})

	t.Run("should trim whitespace around path and tag", func(t *testing.T) {
		directives, malformed := sc.scan("{{#import  ./a.txt @ demo }}")
		require.Empty(t, malformed)
		require.Len(t, directives, 1)
		assert.Equal(t, "./a.txt", directives[0].Path)
		assert.Equal(t, "demo", directives[0].Tag)
	})

	t.Run("should find every directive in document order", func(t *testing.T) {
		doc := "{{#import a.txt@one}}\nmiddle\n{{#import b.txt@two}}\n"

		directives, malformed := sc.scan(doc)
		require.Empty(t, malformed)
		require.Len(t, directives, 2)
		assert.Equal(t, "one", directives[0].Tag)
		assert.Equal(t, "two", directives[1].Tag)
		assert.Less(t, directives[0].End, directives[1].Start)
	})

	t.Run("should not match other deployments' directive keywords", func(t *testing.T) {
		directives, malformed := sc.scan("{{#include a.txt@one}}")
		assert.Empty(t, directives)
		assert.Empty(t, malformed)
	})

	t.Run("should report an escaped directive without resolving it", func(t *testing.T) {
		doc := "see /{{#import a.txt@one}} for the syntax"

		directives, malformed := sc.scan(doc)
		require.Empty(t, malformed)
		require.Len(t, directives, 1)

		d := directives[0]
		assert.True(t, d.Escaped)
		assert.Equal(t, "/{{#import a.txt@one}}", d.Raw)
		assert.Equal(t, d.Raw, doc[d.Start:d.End])
		assert.Equal(t, "{{#import a.txt@one}}", d.unescaped())
	})
}

func Test_DirectiveScanner_Malformed(t *testing.T) {
	sc := newDirectiveScanner("import")

	t.Run("should report a directive without @ and keep scanning", func(t *testing.T) {
		doc := "{{#import no-tag-here}}\n{{#import ok.txt@good}}\n"

		directives, malformed := sc.scan(doc)
		require.Len(t, malformed, 1)
		assert.Contains(t, malformed[0].Reason, "missing @tag")
		assert.Equal(t, Position{Line: 1, Column: 1}, malformed[0].Pos)

		require.Len(t, directives, 1)
		assert.Equal(t, "good", directives[0].Tag)
	})

	t.Run("should report a directive whose braces never close", func(t *testing.T) {
		doc := "{{#import broken.txt@tag\nnext line {{#import ok.txt@good}}\n"

		directives, malformed := sc.scan(doc)
		require.Len(t, malformed, 1)
		assert.Contains(t, malformed[0].Reason, "missing closing")
		assert.Equal(t, "{{#import broken.txt@tag", malformed[0].Raw)

		require.Len(t, directives, 1)
		assert.Equal(t, "good", directives[0].Tag)
	})

	t.Run("should report an empty tag name", func(t *testing.T) {
		_, malformed := sc.scan("{{#import file.txt@}}")
		require.Len(t, malformed, 1)
		assert.Contains(t, malformed[0].Reason, "empty tag")
	})

	t.Run("should report an empty target path", func(t *testing.T) {
		_, malformed := sc.scan("{{#import @tag}}")
		require.Len(t, malformed, 1)
		assert.Contains(t, malformed[0].Reason, "empty target path")
	})

	t.Run("should carry the document position of the broken directive", func(t *testing.T) {
		doc := "line one\nxx {{#import nope}}\n"

		_, malformed := sc.scan(doc)
		require.Len(t, malformed, 1)
		assert.Equal(t, Position{Line: 2, Column: 4}, malformed[0].Pos)
	})
}
