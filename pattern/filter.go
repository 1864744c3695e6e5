package pattern

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxPadWidth and maxRepeat bound the amount of output a single filter may
// produce from its inline arguments.
const (
	maxPadWidth = math.MaxUint16
	maxRepeat   = math.MaxUint16
)

// FilterKind identifies a value transform. The set is closed.
type FilterKind int

const (
	FilterSubstring FilterKind = iota
	FilterSubstringFromEnd
	FilterTrim
	FilterLower
	FilterUpper
	FilterToASCII
	FilterStripNonASCII
	FilterPadLeft
	FilterPadRight
	FilterReplaceFirst
	FilterReplaceAll
	FilterRegexReplaceFirst
	FilterRegexReplaceAll
	FilterRepeat
)

// Filter is one parsed transform together with the arguments it consumed at
// parse time (a substring filter owns its range, a regex filter its compiled
// expression).
type Filter struct {
	Kind    FilterKind
	Rng     Rng
	Fill    rune
	Width   int
	Target  string
	Replace string
	Regex   *regexp.Regexp
	Count   int
}

// parseFilter parses one filter from its segment reader. Digit-led filters
// are disambiguated after the shared number parse: ':' makes a repetition,
// anything else continues as a substring range.
func parseFilter(rd *reader) (Parsed[Filter], *ParseError) {
	start := rd.position()

	r, ok := rd.peek()
	if !ok {
		return Parsed[Filter]{}, &ParseError{Err: ErrExpectedFilter, Start: start, End: rd.end()}
	}

	var (
		f    Filter
		perr *ParseError
	)

	switch {
	case r >= '0' && r <= '9':
		f, perr = parseDigitFilter(rd)
	case r == '-':
		var rng Rng

		rng, perr = parseRange(rd, indexPolicy)
		if perr == nil {
			f = Filter{Kind: FilterSubstring, Rng: rng}
			perr = ensureDone(rd)
		}
	case r == '#':
		rd.next()

		var rng Rng

		rng, perr = parseRange(rd, indexPolicy)
		if perr == nil {
			f = Filter{Kind: FilterSubstringFromEnd, Rng: rng}
			perr = ensureDone(rd)
		}
	case r == 't':
		rd.next()

		f, perr = Filter{Kind: FilterTrim}, ensureDone(rd)
	case r == 'l':
		rd.next()

		f, perr = Filter{Kind: FilterLower}, ensureDone(rd)
	case r == 'u':
		rd.next()

		f, perr = Filter{Kind: FilterUpper}, ensureDone(rd)
	case r == 'a':
		rd.next()

		f, perr = Filter{Kind: FilterToASCII}, ensureDone(rd)
	case r == 'A':
		rd.next()

		f, perr = Filter{Kind: FilterStripNonASCII}, ensureDone(rd)
	case r == '<':
		rd.next()

		f, perr = parsePad(rd, FilterPadLeft)
	case r == '>':
		rd.next()

		f, perr = parsePad(rd, FilterPadRight)
	case r == 's':
		rd.next()

		f, perr = parseSubstitution(rd, FilterReplaceFirst)
	case r == 'S':
		rd.next()

		f, perr = parseSubstitution(rd, FilterReplaceAll)
	case r == 'r':
		rd.next()

		f, perr = parseRegexSubstitution(rd, FilterRegexReplaceFirst)
	case r == 'R':
		rd.next()

		f, perr = parseRegexSubstitution(rd, FilterRegexReplaceAll)
	default:
		rd.next()

		perr = &ParseError{
			Err:   fmt.Errorf("%w: '%c'", ErrUnknownFilter, r),
			Start: start,
			End:   rd.position(),
		}
	}

	if perr != nil {
		return Parsed[Filter]{}, perr
	}

	return Parsed[Filter]{Value: f, Start: start, End: rd.position()}, nil
}

func parseDigitFilter(rd *reader) (Filter, *ParseError) {
	numStart := rd.position()

	n, perr := parseUint(rd, math.MaxInt32)
	if perr != nil {
		return Filter{}, perr
	}

	numEnd := rd.position()

	if r, ok := rd.peek(); ok && r == ':' {
		rd.next()

		if n > maxRepeat {
			return Filter{}, &ParseError{
				Err:   fmt.Errorf("%w: maximum is %d", ErrIntegerOverflow, maxRepeat),
				Start: numStart,
				End:   numEnd,
			}
		}

		return Filter{Kind: FilterRepeat, Count: int(n), Target: rd.readToEnd()}, nil
	}

	if n == 0 {
		return Filter{}, &ParseError{Err: ErrIndexZero, Start: numStart, End: numEnd}
	}

	rng, perr := parseRangeTail(rd, indexPolicy, n, numStart)
	if perr != nil {
		return Filter{}, perr
	}

	if perr := ensureDone(rd); perr != nil {
		return Filter{}, perr
	}

	return Filter{Kind: FilterSubstring, Rng: rng}, nil
}

func parsePad(rd *reader, kind FilterKind) (Filter, *ParseError) {
	fill, ok := rd.next()
	if !ok {
		return Filter{}, &ParseError{Err: ErrExpectedFill, Start: rd.position(), End: rd.end()}
	}

	width, perr := parseUint(rd, maxPadWidth)
	if perr != nil {
		return Filter{}, perr
	}

	if perr := ensureDone(rd); perr != nil {
		return Filter{}, perr
	}

	return Filter{Kind: kind, Fill: fill.value, Width: int(width)}, nil
}

// parseSubstitution reads a user-chosen single-character delimiter followed by
// value and replacement segments. A missing second delimiter leaves the
// replacement empty; an empty value is an error.
func parseSubstitution(rd *reader, kind FilterKind) (Filter, *ParseError) {
	value, replace, perr := splitSubstitution(rd)
	if perr != nil {
		return Filter{}, perr
	}

	return Filter{Kind: kind, Target: value.Value, Replace: replace}, nil
}

func parseRegexSubstitution(rd *reader, kind FilterKind) (Filter, *ParseError) {
	value, replace, perr := splitSubstitution(rd)
	if perr != nil {
		return Filter{}, perr
	}

	re, err := regexp.Compile(value.Value)
	if err != nil {
		return Filter{}, &ParseError{
			Err:   fmt.Errorf("%w: %w", ErrRegexInvalid, err),
			Start: value.Start,
			End:   value.End,
		}
	}

	return Filter{Kind: kind, Regex: re, Replace: replace}, nil
}

func splitSubstitution(rd *reader) (Parsed[string], string, *ParseError) {
	delimStart := rd.position()

	delim, ok := rd.next()
	if !ok {
		return Parsed[string]{}, "", &ParseError{Err: ErrExpectedSubstitution, Start: delimStart, End: rd.end()}
	}

	valueStart := rd.position()
	valueEnd := valueStart

	var value strings.Builder

	for {
		valueEnd = rd.position()

		c, ok := rd.next()
		if !ok {
			valueEnd = rd.position()

			break
		}

		if c.value == delim.value {
			break
		}

		value.WriteRune(c.value)
	}

	if value.Len() == 0 {
		return Parsed[string]{}, "", &ParseError{Err: ErrSubstituteWithoutValue, Start: delimStart, End: valueStart}
	}

	return Parsed[string]{Value: value.String(), Start: valueStart, End: valueEnd}, rd.readToEnd(), nil
}

// apply transforms the value piped into the filter. Filters are pure; all
// failure modes were ruled out at parse time.
func (f Filter) apply(s string) string {
	switch f.Kind {
	case FilterSubstring:
		return f.substring(s)
	case FilterSubstringFromEnd:
		return f.substringFromEnd(s)
	case FilterTrim:
		return strings.TrimSpace(s)
	case FilterLower:
		return strings.ToLower(s)
	case FilterUpper:
		return strings.ToUpper(s)
	case FilterToASCII:
		return toASCII(s)
	case FilterStripNonASCII:
		return stripNonASCII(s)
	case FilterPadLeft:
		if pad := f.Width - utf8.RuneCountInString(s); pad > 0 {
			return strings.Repeat(string(f.Fill), pad) + s
		}

		return s
	case FilterPadRight:
		if pad := f.Width - utf8.RuneCountInString(s); pad > 0 {
			return s + strings.Repeat(string(f.Fill), pad)
		}

		return s
	case FilterReplaceFirst:
		return strings.Replace(s, f.Target, f.Replace, 1)
	case FilterReplaceAll:
		return strings.ReplaceAll(s, f.Target, f.Replace)
	case FilterRegexReplaceFirst:
		return regexReplaceFirst(f.Regex, s, f.Replace)
	case FilterRegexReplaceAll:
		return f.Regex.ReplaceAllString(s, f.Replace)
	case FilterRepeat:
		return strings.Repeat(f.Target, f.Count)
	default:
		return s
	}
}

// substring resolves the 1-based inclusive range against the rune length of
// the value, clamping out-of-bounds indexes to an empty result.
func (f Filter) substring(s string) string {
	rs := []rune(s)

	lo := int(f.Rng.Start) - 1

	hi := len(rs)
	if f.Rng.Bounded && int(f.Rng.End) < hi {
		hi = int(f.Rng.End)
	}

	if lo >= len(rs) || lo >= hi {
		return ""
	}

	return string(rs[lo:hi])
}

// substringFromEnd counts indexes from the last rune (index 1) backwards and
// returns the selected runes in forward order.
func (f Filter) substringFromEnd(s string) string {
	rs := []rune(s)
	n := len(rs)

	lo := 0
	if f.Rng.Bounded {
		lo = n - int(f.Rng.End)
	}

	hi := n - int(f.Rng.Start) + 1

	if lo < 0 {
		lo = 0
	}

	if hi > n {
		hi = n
	}

	if hi <= lo {
		return ""
	}

	return string(rs[lo:hi])
}

func regexReplaceFirst(re *regexp.Regexp, s, replace string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}

	out := make([]byte, 0, len(s))
	out = append(out, s[:m[0]]...)
	out = re.ExpandString(out, replace, s, m)
	out = append(out, s[m[1]:]...)

	return string(out)
}

// marksRemover decomposes characters and removes combining marks, turning
// e.g. "žluťoučký" into "zlutoucky" before the ASCII cut.
var marksRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func toASCII(s string) string {
	folded, _, err := transform.String(marksRemover, s)
	if err != nil {
		folded = s
	}

	return stripNonASCII(folded)
}

func stripNonASCII(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func (f Filter) String() string {
	switch f.Kind {
	case FilterSubstring:
		return "substring " + f.Rng.String()
	case FilterSubstringFromEnd:
		return "substring from end " + f.Rng.String()
	case FilterTrim:
		return "trim"
	case FilterLower:
		return "to lowercase"
	case FilterUpper:
		return "to uppercase"
	case FilterToASCII:
		return "to ASCII"
	case FilterStripNonASCII:
		return "strip non-ASCII"
	case FilterPadLeft:
		return fmt.Sprintf("pad left with '%c' to length %d", f.Fill, f.Width)
	case FilterPadRight:
		return fmt.Sprintf("pad right with '%c' to length %d", f.Fill, f.Width)
	case FilterReplaceFirst:
		return fmt.Sprintf("replace first %q with %q", f.Target, f.Replace)
	case FilterReplaceAll:
		return fmt.Sprintf("replace all %q with %q", f.Target, f.Replace)
	case FilterRegexReplaceFirst:
		return fmt.Sprintf("replace first match of '%s' with %q", f.Regex.String(), f.Replace)
	case FilterRegexReplaceAll:
		return fmt.Sprintf("replace all matches of '%s' with %q", f.Regex.String(), f.Replace)
	case FilterRepeat:
		return fmt.Sprintf("repeat %dx %q", f.Count, f.Target)
	default:
		return fmt.Sprintf("filter %d", f.Kind)
	}
}
