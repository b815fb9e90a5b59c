// Package garnish extends YAML with three tagged value kinds the base
// codec does not natively understand: callables, patterns and an
// explicit-absence sentinel.
//
// Each kind is carried by an explicit tag and handled by a
// resolver/constructor/representer triple:
//
//   - !!callable — executable-code values. Source text parses into a
//     live Callable without ever being evaluated; only an explicit
//     Invoke runs it.
//   - !!pattern — pattern-match values in "/body/flags" form, backed by
//     a compiled matcher with a validated flag set.
//   - !!absent — a sentinel distinct from null and from a missing key.
//
// # Basic Usage
//
//	doc := []byte(`
//	retry: !!pattern /timeout|refused/i
//	backoff: !!callable (n) => n * 2
//	legacy: !!absent
//	`)
//
//	v, _ := garnish.Unmarshal(doc)
//	m := v.(map[string]any)
//
//	m["retry"].(*garnish.Pattern).Match("Connection Refused") // true
//	m["backoff"].(*garnish.Callable).Invoke(float64(3))       // 6
//	garnish.IsAbsent(m["legacy"])                             // true
//
//	out, _ := garnish.Marshal(m) // re-encodes the tagged wire forms
//
// # Security
//
// Decoding never executes document content. Callable construction is
// purely syntactic; a decoded callable that is never invoked has zero
// observable effect, and host functions reach one only when the caller
// passes them to InvokeWith. Mapping keys are materialized by structural
// inspection alone, so decoded content cannot smuggle behavior into the
// key path (see keyString in safekey.go).
//
// # Schemas
//
// The three extensions are available individually (PatternExtension,
// CallableExtension, AbsentExtension) and as an aggregate
// (DefaultSchema). UnmarshalWith/MarshalWith accept a custom Schema for
// callers composing their own tag set.
//
// # Errors
//
// Construction failures abort the decode and surface as a DocumentError
// carrying the offending tag and position; no partial document is
// returned. All failures wrap the package sentinel errors for errors.Is
// checks.
package garnish
