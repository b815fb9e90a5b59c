package script

import (
	"fmt"
	"math"
	"strconv"
)

// maxCallDepth bounds recursion so a hostile or runaway function fails
// with a script error instead of exhausting the goroutine stack.
const maxCallDepth = 10000

// env is one lexical scope in the scope chain.
type env struct {
	vars   map[string]any
	parent *env
}

func newEnv(parent *env) *env {
	return &env{vars: make(map[string]any), parent: parent}
}

func (e *env) define(name string, v any) {
	e.vars[name] = v
}

func (e *env) get(name string) (any, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *env) set(name string, v any) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return true
		}
	}
	return false
}

// interp carries per-invocation evaluation state. A fresh interp is built
// for every top-level Call, so Function values stay immutable and safe
// for concurrent use.
type interp struct {
	depth int
}

// returnSignal unwinds a function body when a return statement executes.
type returnSignal struct {
	value any
}

func (returnSignal) Error() string { return "return outside function" }

// closure pairs a function with its defining scope.
type closure struct {
	fn  *Function
	env *env
}

func (ip *interp) callFunction(cl *closure, args []any) (any, error) {
	if ip.depth >= maxCallDepth {
		return nil, &Error{Msg: fmt.Sprintf("call depth exceeded (%d)", maxCallDepth)}
	}
	ip.depth++
	defer func() { ip.depth-- }()

	scope := newEnv(cl.env)
	// A named function can refer to itself from its own body.
	if cl.fn.name != "" {
		scope.define(cl.fn.name, cl)
	}
	for i, p := range cl.fn.params {
		if i < len(args) {
			scope.define(p, args[i])
		} else {
			scope.define(p, nil)
		}
	}

	for _, s := range cl.fn.body {
		if err := ip.execStmt(s, scope); err != nil {
			if ret, ok := err.(returnSignal); ok {
				return ret.value, nil
			}
			return nil, err
		}
	}
	return nil, nil
}

func (ip *interp) execStmt(s stmt, scope *env) error {
	switch s := s.(type) {
	case varStmt:
		var v any
		if s.init != nil {
			var err error
			v, err = ip.evalExpr(s.init, scope)
			if err != nil {
				return err
			}
		}
		scope.define(s.name, v)
		return nil

	case assignStmt:
		v, err := ip.evalExpr(s.value, scope)
		if err != nil {
			return err
		}
		if !scope.set(s.name, v) {
			return &Error{Line: s.line, Col: s.col, Msg: fmt.Sprintf("assignment to undeclared variable %q", s.name)}
		}
		return nil

	case returnStmt:
		var v any
		if s.value != nil {
			var err error
			v, err = ip.evalExpr(s.value, scope)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: v}

	case ifStmt:
		test, err := ip.evalExpr(s.test, scope)
		if err != nil {
			return err
		}
		branch := s.then
		if !truthy(test) {
			branch = s.alt
		}
		inner := newEnv(scope)
		for _, st := range branch {
			if err := ip.execStmt(st, inner); err != nil {
				return err
			}
		}
		return nil

	case whileStmt:
		for {
			test, err := ip.evalExpr(s.test, scope)
			if err != nil {
				return err
			}
			if !truthy(test) {
				return nil
			}
			inner := newEnv(scope)
			for _, st := range s.body {
				if err := ip.execStmt(st, inner); err != nil {
					return err
				}
			}
		}

	case exprStmt:
		_, err := ip.evalExpr(s.value, scope)
		return err

	default:
		return &Error{Msg: fmt.Sprintf("unknown statement %T", s)}
	}
}

func (ip *interp) evalExpr(e expr, scope *env) (any, error) {
	switch e := e.(type) {
	case numberLit:
		return e.value, nil
	case stringLit:
		return e.value, nil
	case boolLit:
		return e.value, nil
	case nullLit:
		return nil, nil

	case identExpr:
		v, ok := scope.get(e.name)
		if !ok {
			return nil, &Error{Line: e.line, Col: e.col, Msg: fmt.Sprintf("undefined identifier %q", e.name)}
		}
		return v, nil

	case funcLit:
		return &closure{fn: e.fn, env: scope}, nil

	case unaryExpr:
		v, err := ip.evalExpr(e.right, scope)
		if err != nil {
			return nil, err
		}
		switch e.op {
		case tokMinus:
			n, err := toNumber(v)
			if err != nil {
				return nil, err
			}
			return -n, nil
		case tokBang:
			return !truthy(v), nil
		}
		return nil, &Error{Msg: "unknown unary operator"}

	case binaryExpr:
		return ip.evalBinary(e, scope)

	case condExpr:
		test, err := ip.evalExpr(e.test, scope)
		if err != nil {
			return nil, err
		}
		if truthy(test) {
			return ip.evalExpr(e.then, scope)
		}
		return ip.evalExpr(e.alt, scope)

	case callExpr:
		callee, err := ip.evalExpr(e.callee, scope)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(e.args))
		for i, a := range e.args {
			args[i], err = ip.evalExpr(a, scope)
			if err != nil {
				return nil, err
			}
		}
		switch fn := callee.(type) {
		case *closure:
			return ip.callFunction(fn, args)
		case HostFunc:
			return fn(args...)
		default:
			return nil, &Error{Line: e.line, Col: e.col, Msg: fmt.Sprintf("cannot call value of type %T", callee)}
		}

	default:
		return nil, &Error{Msg: fmt.Sprintf("unknown expression %T", e)}
	}
}

func (ip *interp) evalBinary(e binaryExpr, scope *env) (any, error) {
	// Logical operators short-circuit and yield the deciding operand.
	if e.op == tokAnd || e.op == tokOr {
		left, err := ip.evalExpr(e.left, scope)
		if err != nil {
			return nil, err
		}
		if e.op == tokAnd && !truthy(left) {
			return left, nil
		}
		if e.op == tokOr && truthy(left) {
			return left, nil
		}
		return ip.evalExpr(e.right, scope)
	}

	left, err := ip.evalExpr(e.left, scope)
	if err != nil {
		return nil, err
	}
	right, err := ip.evalExpr(e.right, scope)
	if err != nil {
		return nil, err
	}

	switch e.op {
	case tokEq, tokStrictEq:
		return looseEqual(left, right), nil
	case tokNeq, tokStrictNeq:
		return !looseEqual(left, right), nil
	case tokPlus:
		// String concatenation wins when either side is a string.
		if ls, ok := left.(string); ok {
			return ls + stringify(right), nil
		}
		if rs, ok := right.(string); ok {
			return stringify(left) + rs, nil
		}
	}

	ln, err := toNumber(left)
	if err != nil {
		return nil, err
	}
	rn, err := toNumber(right)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case tokPlus:
		return ln + rn, nil
	case tokMinus:
		return ln - rn, nil
	case tokStar:
		return ln * rn, nil
	case tokSlash:
		return ln / rn, nil
	case tokPercent:
		return math.Mod(ln, rn), nil
	case tokLess:
		return ln < rn, nil
	case tokLessEq:
		return ln <= rn, nil
	case tokGreater:
		return ln > rn, nil
	case tokGreaterEq:
		return ln >= rn, nil
	}
	return nil, &Error{Msg: "unknown binary operator"}
}

// truthy reports JS-style truthiness: false, 0, NaN, "" and null are falsy.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// isNumeric reports whether v is one of the Go number types host code
// and document decoding hand in as arguments.
func isNumeric(v any) bool {
	switch v.(type) {
	case float64, int, int64, uint64:
		return true
	}
	return false
}

func toNumber(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, nil
	default:
		return 0, &Error{Msg: fmt.Sprintf("cannot use %T as number", v)}
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumber renders a float without a trailing ".0" for integral values.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func looseEqual(a, b any) bool {
	// Two numbers compare numerically whatever their Go type, so int
	// arguments from host code equal number literals. Everything else
	// compares by type-and-value.
	if isNumeric(a) && isNumeric(b) {
		an, _ := toNumber(a)
		bn, _ := toNumber(b)
		return an == bn
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return a == b
	}
}

func parseNumber(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
