package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"explanation":"a plan","schedule":[]}`
	result, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "a plan", result["explanation"])
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"explanation\":\"fenced\"}\n```"
	result, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "fenced", result["explanation"])
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := "Here is your schedule:\n{\"explanation\":\"ok\"}\nHope that helps!"
	result, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", result["explanation"])
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	raw := `{"schedule":[{"time":"09:00","task":"write {draft}"}]}`
	result, err := ExtractJSON(raw)
	require.NoError(t, err)
	items := result["schedule"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "write {draft}", items[0].(map[string]any)["task"])
}

func TestExtractJSON_LineComments(t *testing.T) {
	raw := "{\n\"duration\": 30 // minutes\n}"
	result, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, float64(30), result["duration"])
}

func TestExtractJSON_LeadingDecimal(t *testing.T) {
	raw := `{"completion": .85}`
	result, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.85, result["completion"])
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I cannot help with that.")
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON(`{"schedule": broken}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestExtractJSON_ErrorCarriesBoundedSnippet(t *testing.T) {
	raw := "not json at all " + strings.Repeat("x", 2000)
	_, err := ExtractJSON(raw)
	require.Error(t, err)
	// The diagnostic keeps only the first 500 characters of the raw text.
	assert.Less(t, len(err.Error()), 700)
	assert.Contains(t, err.Error(), "not json at all")
}
