package confreg

import (
	"encoding/json"
	"strings"
)

// coerce turns a raw string from a name-keyed source into the value stored
// for key. The chain is best-effort and never fails:
//
//  1. if the raw string itself already satisfies spec, keep it as a string
//     (preserves values whose declared shape is a string);
//  2. otherwise, if the raw string parses as a JSON literal, use the parsed
//     value;
//  3. otherwise keep the raw string, deferring the shape check to
//     validation.
func coerce(spec Spec, raw string) any {
	if spec != nil && spec.Check(raw) == nil {
		return raw
	}

	if value, ok := ParseLiteral(raw); ok {
		return value
	}

	return raw
}

// ParseLiteral parses raw as a single JSON literal (number, boolean, null,
// string, array or object). Numbers with no fractional part become int64,
// other numbers float64; collections are normalized recursively. The second
// return value is false when raw is not exactly one literal.
func ParseLiteral(raw string) (any, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}

	// reject trailing content, e.g. "8080 oops"
	if dec.More() {
		return nil, false
	}

	return normalizeLiteral(value), true
}

// normalizeLiteral rewrites json.Number nodes into int64 or float64 and
// recurses into collections.
func normalizeLiteral(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}

		if f, err := v.Float64(); err == nil {
			return f
		}

		return v.String()
	case []any:
		for i := range v {
			v[i] = normalizeLiteral(v[i])
		}

		return v
	case map[string]any:
		for k := range v {
			v[k] = normalizeLiteral(v[k])
		}

		return v
	default:
		return value
	}
}
