package pattern

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

// parseOneFilter parses source as a whole pattern and returns the single
// filter of its single expression.
func parseOneFilter(t *testing.T, source string) Filter {
	t.Helper()

	pat := mustParse(t, source)

	expr := pat.items[0].Value
	if len(expr.Filters) != 1 {
		t.Fatalf("parse %q: expected one filter, got %d", source, len(expr.Filters))
	}

	return expr.Filters[0].Value
}

func applyFilter(t *testing.T, filterSource, value string) string {
	t.Helper()

	return parseOneFilter(t, "{f|"+filterSource+"}").apply(value)
}

func TestSubstringFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		value    string
		expected string
	}{
		{name: "single index", filter: "2", value: "abcde", expected: "b"},
		{name: "closed range", filter: "2-4", value: "abcde", expected: "bcd"},
		{name: "open end", filter: "3-", value: "abcde", expected: "cde"},
		{name: "open start", filter: "-2", value: "abcde", expected: "ab"},
		{name: "full range", filter: "-", value: "abcde", expected: "abcde"},
		{name: "end past length clamps", filter: "2-99", value: "abc", expected: "bc"},
		{name: "start past length is empty", filter: "9", value: "abc", expected: ""},
		{name: "empty value", filter: "1-3", value: "", expected: ""},
		{name: "non-ascii counts runes", filter: "2-3", value: "čárka", expected: "ár"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, applyFilter(t, tt.filter, tt.value))
		})
	}
}

func TestSubstringFromEndFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		value    string
		expected string
	}{
		{name: "last character", filter: "#1", value: "abcde", expected: "e"},
		{name: "range from end", filter: "#2-3", value: "abcde", expected: "cd"},
		{name: "open end keeps head", filter: "#3-", value: "abcde", expected: "abc"},
		{name: "open start keeps tail", filter: "#-2", value: "abcde", expected: "de"},
		{name: "past length clamps", filter: "#2-99", value: "abc", expected: "ab"},
		{name: "non-ascii counts runes", filter: "#1", value: "čárka", expected: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, applyFilter(t, tt.filter, tt.value))
		})
	}
}

func TestCaseAndTrimFilters(t *testing.T) {
	assert.Equal(t, "ABC", applyFilter(t, "u", "aBc"))
	assert.Equal(t, "abc", applyFilter(t, "l", "aBc"))
	assert.Equal(t, "a b", applyFilter(t, "t", "  a b\t"))
}

func TestCaseAndTrimFiltersAreIdempotent(t *testing.T) {
	filters := []string{"u", "l", "t"}
	value := "  Mixed Case Value\t"

	for _, name := range filters {
		t.Run(name, func(t *testing.T) {
			f := parseOneFilter(t, "{f|"+name+"}")

			once := f.apply(value)
			twice := f.apply(once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestASCIIFilters(t *testing.T) {
	assert.Equal(t, "zlutoucky kun", applyFilter(t, "a", "žluťoučký kůň"))
	assert.Equal(t, "luouk", applyFilter(t, "A", "žluťoučký"))
	assert.Equal(t, "plain", applyFilter(t, "a", "plain"))
}

func TestPadFilters(t *testing.T) {
	assert.Equal(t, "007", applyFilter(t, "<03", "7"))
	assert.Equal(t, "7..", applyFilter(t, ">.3", "7"))
	assert.Equal(t, "1234", applyFilter(t, "<03", "1234"))
	// Width is measured in runes.
	assert.Equal(t, "__ů", applyFilter(t, "<_3", "ů"))
}

func TestLiteralReplaceFilters(t *testing.T) {
	assert.Equal(t, "X_a_a", applyFilter(t, "s/a/X", "a_a_a"))
	assert.Equal(t, "X_X_X", applyFilter(t, "S/a/X", "a_a_a"))
	// A missing second delimiter deletes the value.
	assert.Equal(t, "_b", applyFilter(t, "s/a", "a_b"))
	// Any character works as the delimiter.
	assert.Equal(t, "b_b", applyFilter(t, "S,a,b", "a_a"))
}

func TestRegexReplaceFilters(t *testing.T) {
	assert.Equal(t, "X2b3", applyFilter(t, "r/[0-9]/X", "12b3"))
	assert.Equal(t, "XXbX", applyFilter(t, "R/[0-9]/X", "12b3"))
	assert.Equal(t, "abc", applyFilter(t, "R/[0-9]+/X", "abc"))
}

func TestRegexReplaceCaptureInterpolation(t *testing.T) {
	assert.Equal(t, "2-1", applyFilter(t, "r/([0-9])([0-9])/$2-$1", "12"))
	assert.Equal(t, "b.a", applyFilter(t, "R/(a)(b)/$2.$1", "ab"))
}

func TestRepeatFilter(t *testing.T) {
	assert.Equal(t, "ababab", applyFilter(t, "3:ab", "ignored"))
	assert.Equal(t, "", applyFilter(t, "0:ab", "ignored"))
}

func TestFilterParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		sentinel error
	}{
		{name: "missing fill character", source: "{f|<}", sentinel: ErrExpectedFill},
		{name: "missing pad width", source: "{f|<0}", sentinel: ErrExpectedNumber},
		{name: "missing substitution", source: "{f|s}", sentinel: ErrExpectedSubstitution},
		{name: "empty substitution value", source: "{f|s//x}", sentinel: ErrSubstituteWithoutValue},
		{name: "empty regex value", source: "{f|r//x}", sentinel: ErrSubstituteWithoutValue},
		{name: "invalid regex", source: "{f|r/[/x}", sentinel: ErrRegexInvalid},
		{name: "trailing after case filter", source: "{f|ux}", sentinel: ErrUnexpectedCharacter},
		{name: "trailing after range", source: "{f|2-3x}", sentinel: ErrUnexpectedCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseError(t, tt.source)
			assert.IsError(t, perr, tt.sentinel)
		})
	}
}

func TestFilterDescriptions(t *testing.T) {
	assert.Equal(t, "substring 2..5", parseOneFilter(t, "{f|2-5}").String())
	assert.Equal(t, "trim", parseOneFilter(t, "{f|t}").String())
	assert.Equal(t, `pad left with '0' to length 3`, parseOneFilter(t, "{f|<03}").String())
	assert.Equal(t, `repeat 2x "ab"`, parseOneFilter(t, "{f|2:ab}").String())
}
