package pattern

import "strings"

// EvalContext is the per-input state one Eval call reads. The caller
// constructs a fresh context (or advances the counters in place) for each
// input value; the evaluator never mutates it and never performs I/O.
type EvalContext struct {
	// Input is the path or text line the pattern is applied to.
	Input string
	// WorkDir resolves relative inputs for the absolute-path variable.
	WorkDir string
	// LocalCounter and GlobalCounter are read, never advanced, by Eval.
	LocalCounter  uint64
	GlobalCounter uint64
	// CaptureGroups holds regex groups 1..n matched against Input, when a
	// regex was supplied externally. Group 0 (the whole match) is excluded.
	CaptureGroups []string
	// Quote, when non-zero, wraps substituted values that contain whitespace
	// or the quote itself; inner quotes are doubled.
	Quote rune
}

// quoteValue re-escapes a substituted value with the context quote character.
func quoteValue(s string, quote rune) string {
	if !strings.ContainsAny(s, " \t\r\n") && !strings.ContainsRune(s, quote) {
		return s
	}

	doubled := strings.ReplaceAll(s, string(quote), string(quote)+string(quote))

	return string(quote) + doubled + string(quote)
}
