package garnish

import (
	"errors"
	"testing"
)

func TestResolvePattern(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want bool
	}{
		{"simple", "/abc/", true},
		{"with flags", "/abc/gi", true},
		{"empty body", "//", true},
		{"body with slash", "/fo/g/g", true},
		{"no leading slash", "abc/g", false},
		{"unterminated", "/fo", false},
		{"unknown trailing chars", "/fo/q", false},
		{"escaped closing slash", `/fo\/`, false},
		{"bare slash", "/", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolvePattern(tc.raw); got != tc.want {
				t.Errorf("resolvePattern(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestConstructPattern(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		body  string
		flags string
	}{
		{"simple", "/abc/", "abc", ""},
		{"one flag", "/abc/i", "abc", "i"},
		{"several flags", "/abc/mig", "abc", "gim"},
		{"rightmost delimiter", "/fo/g/g", "fo/g", "g"},
		{"escaped slash in body", `/a\/b/`, "a/b", ""},
		{"empty body", "//", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := constructPattern(tc.raw)
			if err != nil {
				t.Fatalf("constructPattern(%q) error: %v", tc.raw, err)
			}
			p := v.(*Pattern)
			if p.Body() != tc.body {
				t.Errorf("Body() = %q, want %q", p.Body(), tc.body)
			}
			if p.Flags() != tc.flags {
				t.Errorf("Flags() = %q, want %q", p.Flags(), tc.flags)
			}
		})
	}
}

func TestConstructPatternErrors(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want error
	}{
		{"unterminated", "/fo", ErrUnterminatedPattern},
		{"empty", "", ErrUnterminatedPattern},
		{"no leading slash", "abc/", ErrUnterminatedPattern},
		{"escaped closing slash", `/fo\/`, ErrUnterminatedPattern},
		{"unknown flag", "/fo/q", ErrInvalidFlag},
		{"duplicate flag", "/fo/giii", ErrInvalidFlag},
		{"u and v together", "/fo/uv", ErrInvalidFlag},
		{"bad body syntax", "/a(/", ErrPatternSyntax},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := constructPattern(tc.raw)
			if err == nil {
				t.Fatalf("constructPattern(%q) should return error", tc.raw)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPatternMatch(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		input string
		want  bool
	}{
		{"case sensitive miss", "/timeout/", "Timeout", false},
		{"ignore case", "/timeout/i", "Connection Timeout", true},
		{"alternation", "/timeout|refused/", "refused", true},
		{"multiline anchors", "/^b$/m", "a\nb\nc", true},
		{"dot all", "/a.b/s", "a\nb", true},
		{"dot default", "/a.b/", "a\nb", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := constructPattern(tc.raw)
			if err != nil {
				t.Fatalf("constructPattern(%q) error: %v", tc.raw, err)
			}
			if got := v.(*Pattern).Match(tc.input); got != tc.want {
				t.Errorf("Match(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestPatternFindAll(t *testing.T) {
	global, err := CompilePattern("a.", "g")
	if err != nil {
		t.Fatalf("CompilePattern() error: %v", err)
	}
	if got := global.FindAll("ax ay az"); len(got) != 3 {
		t.Errorf("FindAll() = %v, want 3 matches", got)
	}

	single, err := CompilePattern("a.", "")
	if err != nil {
		t.Fatalf("CompilePattern() error: %v", err)
	}
	if got := single.FindAll("ax ay az"); len(got) != 1 || got[0] != "ax" {
		t.Errorf("FindAll() = %v, want [ax]", got)
	}
}

func TestPatternString(t *testing.T) {
	v, err := constructPattern("/fo/g/g")
	if err != nil {
		t.Fatalf("constructPattern() error: %v", err)
	}
	if got := v.(*Pattern).String(); got != `/fo\/g/g` {
		t.Errorf("String() = %q, want %q", got, `/fo\/g/g`)
	}
}

func TestPatternFlagsCanonicalOrder(t *testing.T) {
	p, err := CompilePattern("x", "sig")
	if err != nil {
		t.Fatalf("CompilePattern() error: %v", err)
	}
	if p.Flags() != "gis" {
		t.Errorf("Flags() = %q, want %q", p.Flags(), "gis")
	}
	if !p.Global() || !p.HasFlag('i') || p.HasFlag('y') {
		t.Error("flag queries disagree with flag set")
	}
}

func TestPatternRoundTrip(t *testing.T) {
	testCases := []string{
		"/abc/",
		"/fo\\/g/g",
		"/timeout|refused/i",
		"/^item-\\d+$/gm",
	}

	for _, raw := range testCases {
		t.Run(raw, func(t *testing.T) {
			v, err := constructPattern(raw)
			if err != nil {
				t.Fatalf("constructPattern(%q) error: %v", raw, err)
			}
			p := v.(*Pattern)

			node, err := representPattern(p)
			if err != nil {
				t.Fatalf("representPattern() error: %v", err)
			}
			if node.Tag != TagPattern {
				t.Errorf("Tag = %q, want %q", node.Tag, TagPattern)
			}

			again, err := constructPattern(node.Value)
			if err != nil {
				t.Fatalf("re-construct error: %v", err)
			}
			q := again.(*Pattern)
			if q.Body() != p.Body() || q.Flags() != p.Flags() {
				t.Errorf("round-trip changed pattern: %q/%q vs %q/%q",
					q.Body(), q.Flags(), p.Body(), p.Flags())
			}
		})
	}
}

func TestRepresentPatternWrongType(t *testing.T) {
	if _, err := representPattern("not a pattern"); !errors.Is(err, ErrTagNotApplicable) {
		t.Errorf("error = %v, want ErrTagNotApplicable", err)
	}
}
