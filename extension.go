package garnish

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// longTagPrefix is the URI prefix the "!!" secondary tag handle expands
// to. The base codec reports "!!name" scalars with that short spelling
// verbatim, so a schema indexes it alongside the full URI.
const longTagPrefix = "tag:yaml.org,2002:"

// Full tag URIs and their shorthand forms for the three extension kinds.
const (
	// TagPattern is the full tag URI for pattern values.
	TagPattern = "tag:yaml.org,2002:pattern"
	// TagCallable is the full tag URI for callable values.
	TagCallable = "tag:yaml.org,2002:callable"
	// TagAbsent is the full tag URI for the explicit-absence sentinel.
	TagAbsent = "tag:yaml.org,2002:absent"

	// ShorthandPattern is the local-tag alias for pattern values.
	ShorthandPattern = "!pattern"
	// ShorthandCallable is the local-tag alias for callable values.
	ShorthandCallable = "!callable"
	// ShorthandAbsent is the local-tag alias for the absence sentinel.
	ShorthandAbsent = "!absent"
)

// Extension bundles the resolver, constructor and representer for one
// extra value kind.
type Extension struct {
	// Kind is the extension's short name ("pattern", "callable", "absent").
	Kind string

	// Tag is the full tag URI recognized on decode and emitted on encode.
	Tag string

	// Shorthand is the local-tag alias also recognized on decode.
	Shorthand string

	// Resolve reports whether raw scalar text is applicable to this kind.
	// It is a shape check only and never evaluates the text.
	Resolve func(raw string) bool

	// Construct turns tagged raw text into a live value, or fails with an
	// error wrapping one of the package sentinel errors. Construction
	// never executes the text.
	Construct func(raw string) (any, error)

	// Applies reports whether a live value belongs to this kind, for
	// representer dispatch on encode.
	Applies func(v any) bool

	// Represent turns a live value of this kind back into a tagged node.
	Represent func(v any) (*yaml.Node, error)
}

// Schema is a fixed, ordered collection of extensions. Extensions are
// consulted in declaration order, both for tag lookup on decode and for
// Applies dispatch on encode. A Schema is immutable after construction
// and safe for concurrent use.
type Schema struct {
	exts  []Extension
	byTag map[string]int
}

// NewSchema builds a Schema from the given extensions in order.
// Later extensions cannot shadow an earlier extension's tag.
func NewSchema(exts ...Extension) *Schema {
	s := &Schema{
		exts:  make([]Extension, len(exts)),
		byTag: make(map[string]int, 2*len(exts)),
	}
	copy(s.exts, exts)
	for i, ext := range s.exts {
		spellings := []string{ext.Tag, ext.Shorthand}
		if name, ok := strings.CutPrefix(ext.Tag, longTagPrefix); ok {
			spellings = append(spellings, "!!"+name)
		}
		for _, tag := range spellings {
			if tag == "" {
				continue
			}
			if _, ok := s.byTag[tag]; !ok {
				s.byTag[tag] = i
			}
		}
	}
	return s
}

// DefaultSchema returns a Schema covering all three extension kinds:
// pattern, callable and absent.
func DefaultSchema() *Schema {
	return NewSchema(PatternExtension(), CallableExtension(), AbsentExtension())
}

// Extensions returns the schema's extensions in consultation order.
func (s *Schema) Extensions() []Extension {
	out := make([]Extension, len(s.exts))
	copy(out, s.exts)
	return out
}

// Lookup returns the extension registered for a tag in any of its
// spellings: the full URI, the "!!name" secondary form the base codec
// reports, or the local shorthand alias.
func (s *Schema) Lookup(tag string) (Extension, bool) {
	if i, ok := s.byTag[tag]; ok {
		return s.exts[i], true
	}
	return Extension{}, false
}

// Construct dispatches raw text to the constructor registered for tag.
// Unknown tags fail with ErrTagNotApplicable.
func (s *Schema) Construct(tag, raw string) (any, error) {
	ext, ok := s.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTagNotApplicable, tag)
	}
	return ext.Construct(raw)
}

// representerFor returns the first extension whose Applies predicate
// accepts v.
func (s *Schema) representerFor(v any) (Extension, bool) {
	for _, ext := range s.exts {
		if ext.Applies(v) {
			return ext, true
		}
	}
	return Extension{}, false
}
