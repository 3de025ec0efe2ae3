package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streylix/docstore/internal/document"
)

func TestDefaults_AllSectionsPresent(t *testing.T) {
	d := Defaults()

	require.Contains(t, d, document.SectionSettings)
	require.Contains(t, d, document.SectionMessages)
	require.Contains(t, d, document.SectionMessageHistory)
	require.Contains(t, d, document.SectionAppState)

	assert.Equal(t, []any{}, d[document.SectionMessages])
	assert.Equal(t, []any{}, d[document.SectionMessageHistory])
	assert.Equal(t, map[string]any{}, d[document.SectionAppState])
}

func TestDefaults_TerminalStateMaterialized(t *testing.T) {
	d := Defaults()

	v, ok := document.Get(d, "settings.terminalState.activeTerminalId")
	require.True(t, ok)
	assert.Equal(t, float64(1), v)

	v, ok = document.Get(d, "settings.terminalState.terminals")
	require.True(t, ok)
	assert.Equal(t, []any{}, v)
}

func TestDefaults_FreshCopies(t *testing.T) {
	first := Defaults()
	document.Set(first, "settings.terminalState.activeTerminalId", float64(7))
	first[document.SectionMessages] = append(first[document.SectionMessages].([]any), "x")

	second := Defaults()
	v, _ := document.Get(second, "settings.terminalState.activeTerminalId")
	assert.Equal(t, float64(1), v, "mutating one Defaults() result must not affect the next")
	assert.Empty(t, second[document.SectionMessages])
}
