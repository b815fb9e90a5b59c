// Package script parses and evaluates a small JavaScript-like function
// dialect.
//
// The package exists to give document-embedded code a safe decode path:
// Parse performs lexing and parsing only and never evaluates any part of
// the source. Evaluation happens exclusively through an explicit Call on
// the parsed Function.
//
// The dialect covers function and arrow literals, var/let/const,
// assignment, if/else, while, return, and the usual arithmetic,
// comparison, logical and conditional expressions over numbers, strings,
// booleans and null. Named functions may recurse; closures capture their
// defining scope.
//
// There are no ambient builtins. Host behavior reaches a function only
// when the caller passes HostFunc globals to CallWith, so a parsed
// function that is never called has zero observable effect.
package script

import (
	"fmt"
	"strings"
)

// HostFunc is a native function installable as a global for one call.
type HostFunc func(args ...any) (any, error)

// Error is a positioned lexer, parser or evaluation error.
// Line and Col are 1-based; zero means the position is unknown.
type Error struct {
	Msg  string
	Line int
	Col  int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return e.Msg
}

// Function is a parsed, not-yet-evaluated function. Values are immutable
// and safe for concurrent use; each Call evaluates on fresh state.
type Function struct {
	name   string
	params []string
	body   []stmt
	source string
}

// Parse builds a Function from source text without evaluating it.
// Accepted forms are the function literal ("function name(a, b) { ... }",
// name optional) and arrow literals ("(a, b) => expr", "a => expr",
// "(a) => { ... }").
func Parse(src string) (*Function, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, &Error{Msg: "empty function source"}
	}
	toks, err := lex(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	fn, err := p.parseFunction()
	if err != nil {
		return nil, err
	}
	fn.source = trimmed
	return fn, nil
}

// Name returns the declared function name, or "" for anonymous and arrow
// functions.
func (f *Function) Name() string { return f.name }

// Params returns the declared parameter names in order.
func (f *Function) Params() []string {
	out := make([]string, len(f.params))
	copy(out, f.params)
	return out
}

// Source returns the canonical source text the function was parsed from.
func (f *Function) Source() string { return f.source }

// Call evaluates the function body with the given arguments and no
// globals. Missing arguments are null; extra arguments are ignored.
func (f *Function) Call(args ...any) (any, error) {
	return f.CallWith(nil, args...)
}

// CallWith evaluates the function body with caller-supplied globals in
// scope. Globals may hold plain values or HostFunc natives.
func (f *Function) CallWith(globals map[string]any, args ...any) (any, error) {
	root := newEnv(nil)
	for name, v := range globals {
		root.define(name, v)
	}
	ip := &interp{}
	return ip.callFunction(&closure{fn: f, env: root}, args)
}
