// Package testing provides test utilities for garnish.
package testing

import (
	"github.com/zoobzio/garnish"
)

// MustPattern compiles a pattern or panics. For test setup only.
func MustPattern(body, flags string) *garnish.Pattern {
	p, err := garnish.CompilePattern(body, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// MustCallable parses callable source or panics. For test setup only.
func MustCallable(src string) *garnish.Callable {
	c, err := garnish.ParseCallable(src)
	if err != nil {
		panic(err)
	}
	return c
}

// SampleDocument is a document exercising all three extension kinds
// alongside plain values.
func SampleDocument() []byte {
	return []byte(`
version: !!pattern /^v\d+\.\d+$/
transform: !!callable (n) => n * n
deprecated: !!absent
label: sample
weights: [1, 2, 3]
`)
}

// SampleValue is the programmatic counterpart of SampleDocument, usable
// as Marshal input.
func SampleValue() map[string]any {
	return map[string]any{
		"version":    MustPattern(`^v\d+\.\d+$`, ""),
		"transform":  MustCallable("(n) => n * n"),
		"deprecated": garnish.Absent,
		"label":      "sample",
		"weights":    []any{1, 2, 3},
	}
}
