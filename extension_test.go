package garnish

import (
	"errors"
	"testing"
)

func TestDefaultSchemaCoversAllKinds(t *testing.T) {
	s := DefaultSchema()
	exts := s.Extensions()
	if len(exts) != 3 {
		t.Fatalf("Extensions() returned %d entries, want 3", len(exts))
	}

	wantOrder := []string{"pattern", "callable", "absent"}
	for i, kind := range wantOrder {
		if exts[i].Kind != kind {
			t.Errorf("Extensions()[%d].Kind = %q, want %q", i, exts[i].Kind, kind)
		}
	}
}

func TestSchemaLookup(t *testing.T) {
	s := DefaultSchema()
	testCases := []struct {
		name string
		tag  string
		kind string
	}{
		{"pattern full tag", TagPattern, "pattern"},
		{"pattern secondary form", "!!pattern", "pattern"},
		{"pattern shorthand", ShorthandPattern, "pattern"},
		{"callable full tag", TagCallable, "callable"},
		{"callable secondary form", "!!callable", "callable"},
		{"callable shorthand", ShorthandCallable, "callable"},
		{"absent full tag", TagAbsent, "absent"},
		{"absent secondary form", "!!absent", "absent"},
		{"absent shorthand", ShorthandAbsent, "absent"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ext, ok := s.Lookup(tc.tag)
			if !ok {
				t.Fatalf("Lookup(%q) = false", tc.tag)
			}
			if ext.Kind != tc.kind {
				t.Errorf("Lookup(%q).Kind = %q, want %q", tc.tag, ext.Kind, tc.kind)
			}
		})
	}

	if _, ok := s.Lookup("!!str"); ok {
		t.Error("Lookup(!!str) should not match an extension")
	}
}

func TestSchemaConstructDispatch(t *testing.T) {
	s := DefaultSchema()

	v, err := s.Construct(TagPattern, "/abc/i")
	if err != nil {
		t.Fatalf("Construct(pattern) error: %v", err)
	}
	if _, ok := v.(*Pattern); !ok {
		t.Errorf("Construct(pattern) = %T, want *Pattern", v)
	}

	v, err = s.Construct(ShorthandCallable, "(n) => n")
	if err != nil {
		t.Fatalf("Construct(callable) error: %v", err)
	}
	if _, ok := v.(*Callable); !ok {
		t.Errorf("Construct(callable) = %T, want *Callable", v)
	}

	v, err = s.Construct(TagAbsent, "")
	if err != nil {
		t.Fatalf("Construct(absent) error: %v", err)
	}
	if !IsAbsent(v) {
		t.Errorf("Construct(absent) = %v, want sentinel", v)
	}
}

func TestSchemaConstructUnknownTag(t *testing.T) {
	s := DefaultSchema()
	if _, err := s.Construct("!!unknown", "x"); !errors.Is(err, ErrTagNotApplicable) {
		t.Errorf("error = %v, want ErrTagNotApplicable", err)
	}
}

func TestSchemaRepresenterDispatch(t *testing.T) {
	s := DefaultSchema()
	p, err := CompilePattern("x", "")
	if err != nil {
		t.Fatalf("CompilePattern() error: %v", err)
	}
	c, err := ParseCallable("() => 1")
	if err != nil {
		t.Fatalf("ParseCallable() error: %v", err)
	}

	testCases := []struct {
		name string
		v    any
		kind string
	}{
		{"pattern", p, "pattern"},
		{"callable", c, "callable"},
		{"absent", Absent, "absent"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ext, ok := s.representerFor(tc.v)
			if !ok {
				t.Fatalf("representerFor(%T) = false", tc.v)
			}
			if ext.Kind != tc.kind {
				t.Errorf("representerFor(%T).Kind = %q, want %q", tc.v, ext.Kind, tc.kind)
			}
		})
	}

	if _, ok := s.representerFor("ordinary string"); ok {
		t.Error("representerFor(string) should not match")
	}
	if _, ok := s.representerFor(nil); ok {
		t.Error("representerFor(nil) should not match")
	}
}

func TestPartialSchema(t *testing.T) {
	s := NewSchema(AbsentExtension())
	if _, ok := s.Lookup(TagAbsent); !ok {
		t.Error("Lookup(TagAbsent) = false")
	}
	if _, ok := s.Lookup(TagPattern); ok {
		t.Error("partial schema should not resolve pattern tag")
	}
}

func TestResolvePredicates(t *testing.T) {
	// Callable and absent accept any raw text at resolve time; their
	// constructors decide validity. Pattern resolution is shape-based.
	pat := PatternExtension()
	if pat.Resolve("not a pattern") {
		t.Error("pattern Resolve accepted non-pattern text")
	}
	if !pat.Resolve("/x/g") {
		t.Error("pattern Resolve rejected valid text")
	}
	if !CallableExtension().Resolve("") || !AbsentExtension().Resolve("") {
		t.Error("callable/absent Resolve must accept any text")
	}
}
