// Package strip removes environment-specific content from entity file lines.
//
// Stripping works on single lines of text, not on parsed XML: a line that is
// an XML prolog or a sailpoint DOCTYPE declaration is dropped, and the
// volatile attributes id, created and modified are cut out of every other
// line. Attributes split across several lines are not recognised.
package strip

import "regexp"

var (
	// xmlDeclPattern matches a whole-line XML prolog such as
	// <?xml version='1.0' encoding='UTF-8'?>.
	xmlDeclPattern = regexp.MustCompile(`^<\?xml[ a-zA-Z0-9="'.-]*\?>$`)
	// doctypePattern matches a whole-line DOCTYPE declaration that references
	// sailpoint.dtd.
	doctypePattern = regexp.MustCompile(`^<!DOCTYPE [a-zA-Z]* PUBLIC ["sailpoint.dtd" ]{1,}>$`)

	// attributePattern matches a volatile attribute and its quoted word value.
	attributePattern = regexp.MustCompile(`(id|created|modified)=["']\w+["']`)
	// spacedAttributePattern additionally consumes the horizontal whitespace
	// in front of the attribute.
	spacedAttributePattern = regexp.MustCompile(`[ \t]*(id|created|modified)=["']\w+["']`)
)

// Options configures a Stripper.
type Options struct {
	// LegacySpacing removes only the attribute text and leaves the whitespace
	// around it in place, producing byte-identical output to older builds.
	// When false, the whitespace in front of a removed attribute goes with it.
	LegacySpacing bool
}

// Stripper applies the drop and attribute removal rules. It holds no mutable
// state and is safe for concurrent use.
type Stripper struct {
	attr *regexp.Regexp
}

// New returns a Stripper for the given options.
func New(opts Options) *Stripper {
	if opts.LegacySpacing {
		return &Stripper{attr: attributePattern}
	}
	return &Stripper{attr: spacedAttributePattern}
}

// Default is the Stripper used when no options are configured.
var Default = New(Options{})

// Line strips a single line. It returns the stripped text and true, or "" and
// false when the line must be dropped entirely.
//
// A line is dropped when it is a declaration line, either as read or once its
// volatile attributes are removed. The second check keeps Line idempotent.
func (s *Stripper) Line(line string) (string, bool) {
	if IsDeclaration(line) {
		return "", false
	}
	out := s.Attributes(line)
	if IsDeclaration(out) {
		return "", false
	}
	return out, true
}

// Attributes removes every volatile attribute from line. Removal repeats
// until no match remains, since removing one attribute can expose another.
func (s *Stripper) Attributes(line string) string {
	for s.attr.MatchString(line) {
		line = s.attr.ReplaceAllLiteralString(line, "")
	}
	return line
}

// IsDeclaration reports whether line is an XML prolog or a sailpoint DOCTYPE
// declaration.
func IsDeclaration(line string) bool {
	return xmlDeclPattern.MatchString(line) || doctypePattern.MatchString(line)
}
