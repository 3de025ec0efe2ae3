// Package schema describes the expected document shape and repairs documents
// that drifted from it.
package schema

import "github.com/streylix/docstore/internal/document"

// Kind is the type tag of a schema node.
type Kind string

const (
	// KindObject expects a string-keyed mapping.
	KindObject Kind = "object"
	// KindArray expects an ordered sequence.
	KindArray Kind = "array"
	// KindNumber expects a numeric scalar.
	KindNumber Kind = "number"
)

// Field describes a single schema node: its expected kind, the default
// substituted when the stored value is absent or fails validation, and an
// optional nested property schema for structured objects.
type Field struct {
	Kind       Kind
	Default    any
	Properties map[string]Field
}

// sections is the compile-time schema: one entry per top-level document
// section. Only settings.terminalState is structured further; the remaining
// object sections hold arbitrary application state.
var sections = map[string]Field{
	document.SectionSettings: {
		Kind:    KindObject,
		Default: map[string]any{},
		Properties: map[string]Field{
			"terminalState": {
				Kind: KindObject,
				Default: map[string]any{
					"activeTerminalId": float64(1),
					"terminals":        []any{},
				},
				Properties: map[string]Field{
					"activeTerminalId": {Kind: KindNumber, Default: float64(1)},
					"terminals":        {Kind: KindArray, Default: []any{}},
				},
			},
		},
	},
	document.SectionMessages:       {Kind: KindArray, Default: []any{}},
	document.SectionMessageHistory: {Kind: KindArray, Default: []any{}},
	document.SectionAppState:       {Kind: KindObject, Default: map[string]any{}},
}

// Defaults returns a fresh document populated with every section's default.
// The result is independently mutable on each call.
func Defaults() document.Document {
	out := make(document.Document, len(sections))
	for name, field := range sections {
		out[name] = defaultValue(field)
	}
	return out
}

// defaultValue clones a field's default and, for structured objects, fills in
// property defaults as well.
func defaultValue(f Field) any {
	v := document.CloneValue(f.Default)
	if f.Kind != KindObject || len(f.Properties) == 0 {
		return v
	}
	m, ok := document.AsMap(v)
	if !ok {
		return v
	}
	for name, prop := range f.Properties {
		if _, present := m[name]; !present {
			m[name] = defaultValue(prop)
		}
	}
	return m
}
