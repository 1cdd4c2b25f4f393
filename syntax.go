package docweaver

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Syntax fixes the two keywords a deployment uses: the directive keyword that
// appears in host documents ({{#<directive> path@tag}}) and the marker
// keyword that appears in annotated target files (<marker> start <tag>).
// Both are chosen once per deployment, not per call.
type Syntax struct {
	DirectiveKeyword string `yaml:"directive"`
	MarkerKeyword    string `yaml:"marker"`
}

// DefaultSyntax returns the stock syntax: {{#import path@tag}} directives and
// "@tag start"/"@tag end" markers.
func DefaultSyntax() Syntax {
	return Syntax{
		DirectiveKeyword: "import",
		MarkerKeyword:    "@tag",
	}
}

// Validate checks that both keywords are usable as literal match tokens.
func (s Syntax) Validate() error {
	if err := validKeyword("directive", s.DirectiveKeyword); err != nil {
		return err
	}
	return validKeyword("marker", s.MarkerKeyword)
}

func validKeyword(name, kw string) error {
	if kw == "" {
		return fmt.Errorf("syntax: %s keyword must not be empty", name)
	}
	if strings.ContainsAny(kw, " \t\r\n{}") {
		return fmt.Errorf("syntax: %s keyword %q must not contain whitespace or braces", name, kw)
	}
	return nil
}

// ParseSyntax unmarshals a YAML syntax definition, e.g.:
//
//	directive: bookimport
//	marker: "@book"
//
// Missing keys fall back to the defaults.
func ParseSyntax(data []byte) (Syntax, error) {
	s := DefaultSyntax()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Syntax{}, fmt.Errorf("syntax: parsing yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Syntax{}, err
	}
	return s, nil
}

// LoadSyntax reads a YAML syntax definition from r.
func LoadSyntax(r io.Reader) (Syntax, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Syntax{}, fmt.Errorf("syntax: reading config: %w", err)
	}
	return ParseSyntax(data)
}
