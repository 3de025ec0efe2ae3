package document

import (
	"reflect"
	"testing"
)

func TestClone_Independence(t *testing.T) {
	original := Document{
		"settings": map[string]any{
			"terminalState": map[string]any{"terminals": []any{map[string]any{"id": float64(1)}}},
		},
		"messages": []any{"a", "b"},
	}

	clone := original.Clone()
	if !reflect.DeepEqual(map[string]any(original), map[string]any(clone)) {
		t.Fatal("clone differs from original")
	}

	// Mutate the clone at every depth; the original must not move.
	Set(clone, "settings.terminalState.activeTerminalId", float64(9))
	clone["messages"].([]any)[0] = "mutated"

	if _, ok := Get(original, "settings.terminalState.activeTerminalId"); ok {
		t.Error("mutating clone leaked into original mapping")
	}
	if original["messages"].([]any)[0] != "a" {
		t.Error("mutating clone leaked into original sequence")
	}
}

func TestClone_Nil(t *testing.T) {
	var d Document
	if d.Clone() != nil {
		t.Error("clone of nil document should be nil")
	}
}

func TestCloneValue_Scalars(t *testing.T) {
	for _, v := range []any{"s", float64(1.5), true, nil} {
		if got := CloneValue(v); got != v {
			t.Errorf("CloneValue(%v) = %v", v, got)
		}
	}
}

func TestAsMap(t *testing.T) {
	if _, ok := AsMap(Document{"a": 1}); !ok {
		t.Error("Document should be a map")
	}
	if _, ok := AsMap(map[string]any{"a": 1}); !ok {
		t.Error("map[string]any should be a map")
	}
	if _, ok := AsMap([]any{}); ok {
		t.Error("slice should not be a map")
	}
	if _, ok := AsMap("x"); ok {
		t.Error("string should not be a map")
	}
}
