package pattern

import (
	"errors"
	"fmt"
)

// Sentinel parse errors. Every parse failure wraps one of these, so callers
// can classify failures with errors.Is while the *ParseError wrapper carries
// the source range for highlighting.
var (
	// ErrEmptyPattern is returned when the pattern source is empty.
	ErrEmptyPattern = errors.New("pattern must not be empty")
	// ErrUnknownEscape indicates an escape character followed by an unrecognized code.
	ErrUnknownEscape = errors.New("unknown escape sequence")
	// ErrUnexpectedExprEnd indicates the input ended inside an unterminated expression.
	ErrUnexpectedExprEnd = errors.New("unexpected end of expression")
	// ErrExpectedVariable indicates an expression with no variable, such as "{}".
	ErrExpectedVariable = errors.New("expected a variable")
	// ErrExpectedFilter indicates an empty filter segment, such as "{f|}".
	ErrExpectedFilter = errors.New("expected a filter after '|'")
	// ErrUnknownVariable indicates an unrecognized variable tag.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrUnknownFilter indicates an unrecognized filter tag.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrUnexpectedCharacter indicates trailing characters after a complete variable or filter.
	ErrUnexpectedCharacter = errors.New("unexpected character")
	// ErrExpectedNumber is returned when a number was required but no digits were found.
	ErrExpectedNumber = errors.New("expected a number")
	// ErrIntegerOverflow is returned when a digit run does not fit the target domain.
	ErrIntegerOverflow = errors.New("number is too large")
	// ErrExpectedRangeDelimiter is returned when a range requires '-' but another character followed the first number.
	ErrExpectedRangeDelimiter = errors.New("expected range delimiter '-'")
	// ErrRangeStartOverEnd is returned for ranges like "2-1" whose start exceeds their end.
	ErrRangeStartOverEnd = errors.New("range start must not exceed range end")
	// ErrIndexZero is returned for substring indexes below 1.
	ErrIndexZero = errors.New("indexes are numbered from 1")
	// ErrExpectedFill indicates a pad filter missing its fill character.
	ErrExpectedFill = errors.New("expected a fill character")
	// ErrExpectedSubstitution indicates a substitution filter with no delimiter and value.
	ErrExpectedSubstitution = errors.New("expected a delimiter followed by a value")
	// ErrSubstituteWithoutValue indicates a substitution filter whose value segment is empty.
	ErrSubstituteWithoutValue = errors.New("substitution value must not be empty")
	// ErrRegexInvalid indicates a regex filter whose pattern does not compile.
	ErrRegexInvalid = errors.New("invalid regular expression")
)

// Sentinel evaluation errors.
var (
	// ErrInputNotUTF8 indicates the input value is not valid UTF-8.
	ErrInputNotUTF8 = errors.New("input is not valid UTF-8")
	// ErrCanonicalization indicates a path could not be resolved to an absolute form.
	ErrCanonicalization = errors.New("failed to canonicalize path")
	// ErrCaptureGroupOverflow indicates a capture group index beyond the supplied groups.
	ErrCaptureGroupOverflow = errors.New("regex capture group index is out of range")
	// ErrCaptureGroupZeroIndex indicates the invalid capture group index 0.
	ErrCaptureGroupZeroIndex = errors.New("regex capture groups are numbered from 1")
)

// ParseError is a pattern parse failure located in the original source text.
// Start and End are byte offsets into Source, half-open, always within bounds.
type ParseError struct {
	Err    error
	Source string
	Start  int
	End    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at %d..%d", e.Err, e.Start, e.End)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvalError is an evaluation failure for one input value. It keeps the range
// of the pattern node that failed and the offending input value.
type EvalError struct {
	Err    error
	Source string
	Input  string
	Start  int
	End    int
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%v (input %q, pattern %d..%d)", e.Err, e.Input, e.Start, e.End)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
