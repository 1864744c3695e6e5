package highlight

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/repath/pattern"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ColorMode
	}{
		{input: "", expected: ColorAuto},
		{input: "auto", expected: ColorAuto},
		{input: "always", expected: ColorAlways},
		{input: "never", expected: ColorNever},
	}

	for _, tt := range tests {
		mode, err := ParseColorMode(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, mode)
	}

	_, err := ParseColorMode("rainbow")
	assert.IsError(t, err, ErrInvalidColorMode)
}

func TestRenderParseError(t *testing.T) {
	_, err := pattern.Parse("a{f|q}b", pattern.DefaultEscape)
	assert.Error(t, err)

	var buf strings.Builder
	ok := NewPrinter(&buf, ColorNever).RenderError(err)
	assert.True(t, ok)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "error: "))
	assert.Equal(t, "    a{f|q}b", lines[1])
	// 'q' sits at column 4 of the source.
	assert.Equal(t, "        ^", lines[2])
}

func TestRenderEvalErrorIncludesInput(t *testing.T) {
	pat, err := pattern.Parse("{2}", pattern.DefaultEscape)
	assert.NoError(t, err)

	_, err = pat.Eval(&pattern.EvalContext{Input: "x", CaptureGroups: []string{"a"}})
	assert.Error(t, err)

	var buf strings.Builder
	ok := NewPrinter(&buf, ColorNever).RenderError(err)
	assert.True(t, ok)

	out := buf.String()
	assert.Contains(t, out, "    {2}")
	assert.Contains(t, out, `input: "x"`)
}

func TestRenderErrorUnlocated(t *testing.T) {
	var buf strings.Builder

	ok := NewPrinter(&buf, ColorNever).RenderError(errors.New("plain failure"))
	assert.False(t, ok)
	assert.Equal(t, "", buf.String())
}

func TestRenderErrorZeroWidthRange(t *testing.T) {
	// Unterminated expression points past the end of the source; the caret
	// line still shows one caret.
	_, err := pattern.Parse("{", pattern.DefaultEscape)
	assert.Error(t, err)

	var buf strings.Builder
	ok := NewPrinter(&buf, ColorNever).RenderError(err)
	assert.True(t, ok)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "    {", lines[1])
	assert.Equal(t, "     ^", lines[2])
}

func TestExplain(t *testing.T) {
	pat, err := pattern.Parse("_{f|t}", pattern.DefaultEscape)
	assert.NoError(t, err)

	var buf strings.Builder
	NewPrinter(&buf, ColorNever).Explain(pat)

	assert.Equal(t, strings.Join([]string{
		"_{f|t}",
		"^ constant \"_\"",
		"  ^ file name",
		"    ^ trim",
		"",
	}, "\n"), buf.String())
}

func TestColumnHelpersCountRunes(t *testing.T) {
	// Multi-byte runes occupy one column each.
	source := "žű{f}"
	assert.Equal(t, 2, indentColumns(source, 4))
	assert.Equal(t, 2, caretColumns(source, 0, 4))
	assert.Equal(t, 1, caretColumns(source, 4, 4))
}
