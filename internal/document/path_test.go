package document

import (
	"reflect"
	"testing"
)

func TestGet_NestedValue(t *testing.T) {
	d := Document{
		"settings": map[string]any{
			"theme": "dark",
			"terminalState": map[string]any{
				"activeTerminalId": float64(2),
			},
		},
	}

	v, ok := Get(d, "settings.theme")
	if !ok || v != "dark" {
		t.Fatalf("Get(settings.theme) = %v, %v; want dark, true", v, ok)
	}

	v, ok = Get(d, "settings.terminalState.activeTerminalId")
	if !ok || v != float64(2) {
		t.Fatalf("Get(settings.terminalState.activeTerminalId) = %v, %v; want 2, true", v, ok)
	}
}

func TestGet_MissingSegment(t *testing.T) {
	d := Document{"settings": map[string]any{}}

	if _, ok := Get(d, "settings.missing"); ok {
		t.Error("missing leaf should report ok=false")
	}
	if _, ok := Get(d, "nothing.at.all"); ok {
		t.Error("missing root segment should report ok=false")
	}
}

func TestGet_ScalarIntermediate(t *testing.T) {
	d := Document{"settings": "not a map"}

	if _, ok := Get(d, "settings.theme"); ok {
		t.Error("scalar intermediate should report ok=false")
	}
}

func TestSet_CreatesIntermediates(t *testing.T) {
	d := Document{}
	Set(d, "settings.terminalState.activeTerminalId", float64(3))

	v, ok := Get(d, "settings.terminalState.activeTerminalId")
	if !ok || v != float64(3) {
		t.Fatalf("Get after Set = %v, %v; want 3, true", v, ok)
	}
}

func TestSet_ReplacesScalarIntermediate(t *testing.T) {
	d := Document{"settings": "corrupt"}
	Set(d, "settings.theme", "light")

	v, ok := Get(d, "settings.theme")
	if !ok || v != "light" {
		t.Fatalf("Get after Set = %v, %v; want light, true", v, ok)
	}
}

func TestSet_TopLevelKey(t *testing.T) {
	d := Document{}
	Set(d, "appState", map[string]any{"minimized": true})

	want := map[string]any{"minimized": true}
	if !reflect.DeepEqual(d["appState"], want) {
		t.Fatalf("appState = %v; want %v", d["appState"], want)
	}
}

func TestUnset_RemovesLeaf(t *testing.T) {
	d := Document{"appState": map[string]any{"healthCheck": "x", "minimized": true}}

	if !Unset(d, "appState.healthCheck") {
		t.Fatal("Unset should report removal")
	}
	if _, ok := Get(d, "appState.healthCheck"); ok {
		t.Error("leaf still present after Unset")
	}
	if _, ok := Get(d, "appState.minimized"); !ok {
		t.Error("sibling removed by Unset")
	}
}

func TestUnset_MissingLeaf(t *testing.T) {
	d := Document{"appState": map[string]any{}}

	if Unset(d, "appState.healthCheck") {
		t.Error("Unset of absent leaf should report false")
	}
	if Unset(d, "no.such.path") {
		t.Error("Unset through missing intermediates should report false")
	}
}
