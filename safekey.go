package garnish

import (
	"strconv"
	"strings"
)

// objectKeySentinel is the fixed key string for any object-shaped value
// used as a mapping key. The js-yaml-compatible spelling keeps documents
// interchangeable across implementations.
const objectKeySentinel = "[object Object]"

// keyString materializes a decoded value as a mapping key.
//
// Keys are computed by structural inspection over a closed set of
// shapes: plain scalars use their natural text form, arrays join their
// elements' key strings with commas, and everything else collapses to
// the fixed object sentinel. No value-provided conversion behavior
// (fmt.Stringer, encoding.TextMarshaler, a decoded "toString" entry) is
// ever consulted, so document content cannot influence key
// materialization beyond its own structure.
func keyString(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, el := range v {
			parts[i] = keyString(el)
		}
		return strings.Join(parts, ",")
	default:
		// Maps, patterns, callables, the absence sentinel and anything
		// unrecognized are object-shaped.
		return objectKeySentinel
	}
}
