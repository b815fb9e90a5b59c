package garnish

import (
	"fmt"
	"strings"

	"github.com/zoobzio/garnish/script"
	"gopkg.in/yaml.v3"
)

// foldThreshold is the line length above which a single-line callable
// source is emitted double-quoted, so the emitter's line wrapping uses
// escaped breaks that round-trip byte-identically.
const foldThreshold = 80

// Callable is a live, invocable value parsed from function source text.
// Parsing never evaluates the text; invocation happens only through an
// explicit Invoke or InvokeWith call. Values are immutable and safe for
// concurrent use.
type Callable struct {
	fn *script.Function
}

// ParseCallable builds a Callable from function or arrow source text
// without executing any of it.
func ParseCallable(src string) (*Callable, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyCallableBody
	}
	fn, err := script.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCallable, err)
	}
	return &Callable{fn: fn}, nil
}

// Name returns the declared function name, or "" for anonymous and
// arrow functions.
func (c *Callable) Name() string { return c.fn.Name() }

// Params returns the declared parameter names in order.
func (c *Callable) Params() []string { return c.fn.Params() }

// Source returns the canonical source text of the callable.
func (c *Callable) Source() string { return c.fn.Source() }

// Invoke evaluates the callable with the given arguments and no host
// globals.
func (c *Callable) Invoke(args ...any) (any, error) {
	return c.fn.Call(args...)
}

// InvokeWith evaluates the callable with caller-supplied globals in
// scope. This is the only way host behavior becomes reachable from a
// decoded callable.
func (c *Callable) InvokeWith(globals map[string]any, args ...any) (any, error) {
	return c.fn.CallWith(globals, args...)
}

// resolveCallable accepts any raw text; an explicit callable tag always
// routes to the constructor, which rejects empty bodies.
func resolveCallable(string) bool { return true }

func constructCallable(raw string) (any, error) {
	return ParseCallable(raw)
}

// representCallable serializes via the value's own source reflection.
// Multi-line source uses literal block style, whose fold/unfold
// transform preserves line boundaries exactly; long single lines use
// double-quoted style so emitter wrapping is escape-based and lossless.
func representCallable(v any) (*yaml.Node, error) {
	c, ok := v.(*Callable)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a callable", ErrTagNotApplicable, v)
	}
	src := c.Source()
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   TagCallable,
		Value: src,
	}
	switch {
	case strings.Contains(src, "\n"):
		node.Style = yaml.LiteralStyle
	case len(src) > foldThreshold:
		node.Style = yaml.DoubleQuotedStyle
	default:
		node.Style = yaml.SingleQuotedStyle
	}
	return node, nil
}

// CallableExtension returns the resolver/constructor/representer triple
// for callable values.
func CallableExtension() Extension {
	return Extension{
		Kind:      "callable",
		Tag:       TagCallable,
		Shorthand: ShorthandCallable,
		Resolve:   resolveCallable,
		Construct: constructCallable,
		Applies: func(v any) bool {
			_, ok := v.(*Callable)
			return ok
		},
		Represent: representCallable,
	}
}
