package schema

import (
	"encoding/json"
	"errors"

	"github.com/streylix/docstore/internal/document"
)

// ValidateAndFix produces a document satisfying the schema from arbitrary
// parsed input. It never fails: any section or structured field that is
// absent, of the wrong shape, or unrecoverable falls back to its schema
// default. The result never aliases the input, and the function is
// idempotent.
//
// A known defect class is repaired along the way: a structured value that was
// persisted as a string containing a second layer of serialized JSON (for
// example settings.terminalState stored as `"{\"activeTerminalId\":2}"`) is
// detected and re-parsed into its proper form.
func ValidateAndFix(raw any) document.Document {
	root, ok := document.AsMap(raw)
	if !ok {
		// The whole document may itself be double-encoded.
		if s, isString := raw.(string); isString {
			if v, err := reparse(s); err == nil {
				root, _ = document.AsMap(v)
			}
		}
	}
	out := make(document.Document, len(sections))
	for name, field := range sections {
		var v any
		if root != nil {
			v = root[name]
		}
		out[name] = fixValue(v, field)
	}
	return out
}

// fixValue repairs a single value against its schema node. The returned value
// is always a deep copy.
func fixValue(v any, f Field) any {
	if s, isString := v.(string); isString && (f.Kind == KindObject || f.Kind == KindArray) {
		parsed, err := reparse(s)
		if err != nil {
			return defaultValue(f)
		}
		v = parsed
	}

	switch f.Kind {
	case KindObject:
		m, ok := document.AsMap(v)
		if !ok {
			return defaultValue(f)
		}
		out := make(map[string]any, len(m))
		for k, elem := range m {
			out[k] = document.CloneValue(elem)
		}
		for name, prop := range f.Properties {
			out[name] = fixValue(out[name], prop)
		}
		return out
	case KindArray:
		s, ok := v.([]any)
		if !ok {
			return defaultValue(f)
		}
		out := make([]any, len(s))
		for i, elem := range s {
			out[i] = document.CloneValue(elem)
		}
		return out
	case KindNumber:
		switch v.(type) {
		case float64, float32, int, int64, int32:
			return v
		default:
			return defaultValue(f)
		}
	default:
		return defaultValue(f)
	}
}

// reparse decodes a string as JSON, succeeding only when it yields a
// structured value. Scalars do not count as the double-encoding defect.
func reparse(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	default:
		return nil, errNotStructured
	}
}

var errNotStructured = errors.New("string does not decode to an object or array")
