package garnish

import (
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/garnish/script"
	"gopkg.in/yaml.v3"
)

func TestParseCallableForms(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		args []any
		want any
	}{
		{"named function", "function double(n) { return n * 2; }", []any{float64(4)}, float64(8)},
		{"anonymous function", "function (a, b) { return a + b; }", []any{float64(1), float64(2)}, float64(3)},
		{"arrow expression", "(n) => n + 1", []any{float64(1)}, float64(2)},
		{"arrow bare param", "n => n * n", []any{float64(3)}, float64(9)},
		{"arrow block", "(n) => { return n - 1; }", []any{float64(5)}, float64(4)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseCallable(tc.src)
			if err != nil {
				t.Fatalf("ParseCallable(%q) error: %v", tc.src, err)
			}
			got, err := c.Invoke(tc.args...)
			if err != nil {
				t.Fatalf("Invoke() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Invoke() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseCallableErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrEmptyCallableBody},
		{"whitespace", "  \n  ", ErrEmptyCallableBody},
		{"not a function", "2 + 2", ErrMalformedCallable},
		{"unterminated body", "function f() { return 1", ErrMalformedCallable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCallable(tc.src)
			if err == nil {
				t.Fatalf("ParseCallable(%q) should return error", tc.src)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestConstructCallableDoesNotExecute(t *testing.T) {
	calls := 0
	hook := script.HostFunc(func(...any) (any, error) {
		calls++
		return nil, nil
	})

	// The body is a call expression; construction must not run it.
	v, err := constructCallable("() => fire()")
	if err != nil {
		t.Fatalf("constructCallable() error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("construction invoked the body %d times", calls)
	}

	c := v.(*Callable)
	if _, err := c.InvokeWith(map[string]any{"fire": hook}); err != nil {
		t.Fatalf("InvokeWith() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("hook calls = %d, want 1", calls)
	}
}

func TestCallableIntrospection(t *testing.T) {
	c, err := ParseCallable("function clamp(v, lo, hi) { return v < lo ? lo : v > hi ? hi : v; }")
	if err != nil {
		t.Fatalf("ParseCallable() error: %v", err)
	}
	if c.Name() != "clamp" {
		t.Errorf("Name() = %q, want clamp", c.Name())
	}
	if got := c.Params(); len(got) != 3 || got[0] != "v" || got[1] != "lo" || got[2] != "hi" {
		t.Errorf("Params() = %v, want [v lo hi]", got)
	}
	if !strings.HasPrefix(c.Source(), "function clamp") {
		t.Errorf("Source() = %q, want original text", c.Source())
	}
}

func TestRepresentCallableStyles(t *testing.T) {
	testCases := []struct {
		name  string
		src   string
		style yaml.Style
	}{
		{"short single line", "(n) => n + 1", yaml.SingleQuotedStyle},
		{
			"long single line",
			"(value) => value * 100000000 + value * 20000000 + value * 3000000 + value * 400000",
			yaml.DoubleQuotedStyle,
		},
		{"multi line", "function f(n) {\n  return n;\n}", yaml.LiteralStyle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseCallable(tc.src)
			if err != nil {
				t.Fatalf("ParseCallable() error: %v", err)
			}
			node, err := representCallable(c)
			if err != nil {
				t.Fatalf("representCallable() error: %v", err)
			}
			if node.Tag != TagCallable {
				t.Errorf("Tag = %q, want %q", node.Tag, TagCallable)
			}
			if node.Style != tc.style {
				t.Errorf("Style = %v, want %v", node.Style, tc.style)
			}
			if node.Value != c.Source() {
				t.Errorf("Value = %q, want source text", node.Value)
			}
		})
	}
}

func TestCallableRoundTrip(t *testing.T) {
	src := "function max(a, b) {\n  if (a > b) { return a; }\n  return b;\n}"
	c, err := ParseCallable(src)
	if err != nil {
		t.Fatalf("ParseCallable() error: %v", err)
	}

	node, err := representCallable(c)
	if err != nil {
		t.Fatalf("representCallable() error: %v", err)
	}
	again, err := constructCallable(node.Value)
	if err != nil {
		t.Fatalf("re-construct error: %v", err)
	}
	c2 := again.(*Callable)

	if c2.Source() != src {
		t.Errorf("round-trip changed source:\n%q\nvs\n%q", c2.Source(), src)
	}
	for _, pair := range [][2]float64{{1, 2}, {7, 3}, {4, 4}} {
		want, err := c.Invoke(pair[0], pair[1])
		if err != nil {
			t.Fatalf("Invoke() error: %v", err)
		}
		got, err := c2.Invoke(pair[0], pair[1])
		if err != nil {
			t.Fatalf("reconstructed Invoke() error: %v", err)
		}
		if got != want {
			t.Errorf("Invoke(%v, %v) = %v, want %v", pair[0], pair[1], got, want)
		}
	}
}

func TestRepresentCallableWrongType(t *testing.T) {
	if _, err := representCallable(42); !errors.Is(err, ErrTagNotApplicable) {
		t.Errorf("error = %v, want ErrTagNotApplicable", err)
	}
}
