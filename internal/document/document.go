// Package document defines the tree-shaped value persisted by the store and
// the dotted-path helpers used to navigate it.
package document

// Top-level section names. Every document carries all four sections after a
// read; the schema package enforces this.
const (
	SectionSettings       = "settings"
	SectionMessages       = "messages"
	SectionMessageHistory = "messageHistory"
	SectionAppState       = "appState"
)

// Document is the single root value persisted by the store: a nested mapping
// from string keys to scalars, mappings, or ordered sequences, as produced by
// encoding/json unmarshaling into any.
type Document map[string]any

// Clone returns a deep copy of the document. Mutating the copy never affects
// the original.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a JSON-shaped value (maps, slices, scalars).
// Scalars are returned as-is; maps and slices are copied recursively.
func CloneValue(v any) any {
	switch val := v.(type) {
	case Document:
		return map[string]any(val.Clone())
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = CloneValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = CloneValue(elem)
		}
		return out
	default:
		return v
	}
}

// AsMap reports whether v is a string-keyed mapping, unwrapping the Document
// type if needed.
func AsMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case Document:
		return map[string]any(val), true
	case map[string]any:
		return val, true
	default:
		return nil, false
	}
}
