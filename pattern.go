package garnish

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// flagAlphabet is the recognized pattern flag set in canonical order.
// Each flag may appear at most once, and u and v exclude each other.
// Flags i, m and s change matcher semantics; d, g, u, v and y are
// carried as queryable behavior flags.
const flagAlphabet = "dgimsuvy"

// Pattern is a live pattern matcher with its flag set. The wire form is
// "/body/flags". Values are immutable and safe for concurrent use.
type Pattern struct {
	re    *regexp.Regexp
	body  string
	flags string // canonical flagAlphabet order
}

// CompilePattern builds a Pattern from a bare body and flag string.
// Flags are validated against the recognized alphabet and normalized to
// canonical order.
func CompilePattern(body, flags string) (*Pattern, error) {
	normalized, err := normalizeFlags(flags)
	if err != nil {
		return nil, err
	}

	var inline strings.Builder
	for _, f := range normalized {
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		}
	}
	source := body
	if inline.Len() > 0 {
		source = "(?" + inline.String() + ")" + body
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternSyntax, err)
	}

	return &Pattern{re: re, body: body, flags: normalized}, nil
}

// normalizeFlags validates flags against the alphabet, rejects
// duplicates and returns them in canonical order.
func normalizeFlags(flags string) (string, error) {
	var seen [len(flagAlphabet)]bool
	for _, f := range flags {
		i := strings.IndexRune(flagAlphabet, f)
		if i < 0 {
			return "", fmt.Errorf("%w: unknown flag %q", ErrInvalidFlag, string(f))
		}
		if seen[i] {
			return "", fmt.Errorf("%w: duplicate flag %q", ErrInvalidFlag, string(f))
		}
		seen[i] = true
	}
	// u and v select competing Unicode modes and cannot combine.
	if seen[strings.IndexByte(flagAlphabet, 'u')] && seen[strings.IndexByte(flagAlphabet, 'v')] {
		return "", fmt.Errorf("%w: flags \"u\" and \"v\" are mutually exclusive", ErrInvalidFlag)
	}
	var sb strings.Builder
	for i, f := range flagAlphabet {
		if seen[i] {
			sb.WriteRune(f)
		}
	}
	return sb.String(), nil
}

// Body returns the pattern body with delimiter escapes removed.
func (p *Pattern) Body() string { return p.body }

// Flags returns the active flags in canonical order.
func (p *Pattern) Flags() string { return p.flags }

// HasFlag reports whether flag f is active.
func (p *Pattern) HasFlag(f byte) bool {
	return strings.IndexByte(p.flags, f) >= 0
}

// Global reports whether the g flag is active.
func (p *Pattern) Global() bool { return p.HasFlag('g') }

// Match reports whether the pattern matches anywhere in s.
func (p *Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// Find returns the first match in s, or "" when there is none.
func (p *Pattern) Find(s string) string {
	return p.re.FindString(s)
}

// FindAll returns every match when the g flag is active, otherwise at
// most the first match.
func (p *Pattern) FindAll(s string) []string {
	if p.Global() {
		return p.re.FindAllString(s, -1)
	}
	if m := p.re.FindString(s); m != "" || p.re.MatchString(s) {
		return []string{m}
	}
	return nil
}

// String returns the "/body/flags" wire form with the body's delimiter
// characters escaped.
func (p *Pattern) String() string {
	return "/" + escapePatternBody(p.body) + "/" + p.flags
}

// resolvePattern reports whether raw has pattern shape: a leading "/",
// then a body, then an unescaped "/" followed only by flag characters.
// The delimiter search runs from the end, skipping the maximal trailing
// run of flag-alphabet characters.
func resolvePattern(raw string) bool {
	if len(raw) < 2 || raw[0] != '/' {
		return false
	}
	j := len(raw)
	for j > 1 && strings.IndexByte(flagAlphabet, raw[j-1]) >= 0 {
		j--
	}
	return j > 1 && raw[j-1] == '/' && !escapedAt(raw, j-1)
}

// constructPattern splits raw at the last unescaped "/" and compiles the
// result. The rightmost-valid-delimiter rule makes "/fo/g/g" parse as
// body "fo/g" with flag "g".
func constructPattern(raw string) (any, error) {
	if len(raw) < 2 || raw[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrUnterminatedPattern, raw)
	}
	delim := -1
	for i := len(raw) - 1; i > 0; i-- {
		if raw[i] == '/' && !escapedAt(raw, i) {
			delim = i
			break
		}
	}
	if delim < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnterminatedPattern, raw)
	}
	body := unescapePatternBody(raw[1:delim])
	flags := raw[delim+1:]
	return CompilePattern(body, flags)
}

// escapedAt reports whether the character at index i is preceded by an
// odd number of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func escapePatternBody(body string) string {
	return strings.ReplaceAll(body, "/", `\/`)
}

func unescapePatternBody(body string) string {
	return strings.ReplaceAll(body, `\/`, "/")
}

// representPattern rebuilds the wire form from the live value's own body
// and flag introspection, never from cached raw text.
func representPattern(v any) (*yaml.Node, error) {
	p, ok := v.(*Pattern)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a pattern", ErrTagNotApplicable, v)
	}
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   TagPattern,
		Value: p.String(),
	}
	// A body holding a newline cannot survive plain-scalar folding;
	// double-quoted escaping is lossless for any content.
	if strings.ContainsAny(node.Value, "\n\t") {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node, nil
}

// PatternExtension returns the resolver/constructor/representer triple
// for pattern values.
func PatternExtension() Extension {
	return Extension{
		Kind:      "pattern",
		Tag:       TagPattern,
		Shorthand: ShorthandPattern,
		Resolve:   resolvePattern,
		Construct: constructPattern,
		Applies: func(v any) bool {
			_, ok := v.(*Pattern)
			return ok
		},
		Represent: representPattern,
	}
}
