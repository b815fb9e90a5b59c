package garnish

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AbsentValue is the explicit-absence sentinel type. The zero value is
// the sentinel; compare against Absent or use IsAbsent.
type AbsentValue struct{}

// Absent is the sentinel denoting "explicitly declared as not-a-value",
// distinct from both nil and a missing key.
var Absent = AbsentValue{}

// IsAbsent reports whether v is the absence sentinel.
func IsAbsent(v any) bool {
	_, ok := v.(AbsentValue)
	return ok
}

// resolveAbsent accepts any raw text: the tag alone is the value, and
// trailing scalar text is ignored rather than rejected.
func resolveAbsent(string) bool { return true }

// constructAbsent always succeeds, ignoring raw text.
func constructAbsent(string) (any, error) {
	return Absent, nil
}

// representAbsent emits the bare tag with no scalar body. This is the
// only form, regardless of what text followed the tag on decode.
func representAbsent(v any) (*yaml.Node, error) {
	if !IsAbsent(v) {
		return nil, fmt.Errorf("%w: %T is not the absence sentinel", ErrTagNotApplicable, v)
	}
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   TagAbsent,
		Value: "",
	}, nil
}

// AbsentExtension returns the resolver/constructor/representer triple
// for the absence sentinel.
func AbsentExtension() Extension {
	return Extension{
		Kind:      "absent",
		Tag:       TagAbsent,
		Shorthand: ShorthandAbsent,
		Resolve:   resolveAbsent,
		Construct: constructAbsent,
		Applies:   IsAbsent,
		Represent: representAbsent,
	}
}
