package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rng is a parsed index or number interval. Start and End are inclusive; when
// Bounded is false the interval is open-ended. A missing start takes the base
// of the domain it was parsed for (1 for substring indexes, 0 for numbers).
type Rng struct {
	Start   uint64
	End     uint64
	Bounded bool
}

func (r Rng) String() string {
	var b strings.Builder

	b.WriteString(strconv.FormatUint(r.Start, 10))
	b.WriteString("..")

	if r.Bounded {
		b.WriteString(strconv.FormatUint(r.End, 10))
	}

	return b.String()
}

// rangePolicy captures how the shared range grammar differs between its use
// sites: substring indexes are 1-based and accept a bare number as a single
// index, while the seq number generator is 0-based and always needs the
// delimiter to tell an interval from a plain number.
type rangePolicy struct {
	base             uint64
	max              uint64
	requireDelimiter bool
	allowZero        bool
}

var (
	indexPolicy  = rangePolicy{base: 1, max: math.MaxInt32, requireDelimiter: false, allowZero: false}
	numberPolicy = rangePolicy{base: 0, max: math.MaxUint64, requireDelimiter: true, allowZero: true}
)

// parseRange parses `N`, `N-`, `N-M`, `-` or `-M` under the given policy.
func parseRange(rd *reader, pol rangePolicy) (Rng, *ParseError) {
	r, ok := rd.peek()
	if !ok {
		return Rng{}, &ParseError{Err: ErrExpectedNumber, Start: rd.position(), End: rd.end()}
	}

	if r == '-' {
		rd.next()

		if _, more := rd.peek(); !more {
			return Rng{Start: pol.base}, nil
		}

		end, perr := parseBound(rd, pol)
		if perr != nil {
			return Rng{}, perr
		}

		return Rng{Start: pol.base, End: end, Bounded: true}, nil
	}

	start := rd.position()

	first, perr := parseBound(rd, pol)
	if perr != nil {
		return Rng{}, perr
	}

	return parseRangeTail(rd, pol, first, start)
}

// parseRangeTail finishes a range whose first number was already consumed.
// The filter grammar uses this directly after peeking past the number to rule
// out a repetition filter.
func parseRangeTail(rd *reader, pol rangePolicy, first uint64, firstStart int) (Rng, *ParseError) {
	r, ok := rd.peek()
	if !ok {
		if pol.requireDelimiter {
			return Rng{}, &ParseError{Err: ErrExpectedRangeDelimiter, Start: rd.position(), End: rd.end()}
		}

		return Rng{Start: first, End: first, Bounded: true}, nil
	}

	if r != '-' {
		charStart := rd.position()
		rd.next()

		return Rng{}, &ParseError{
			Err:   fmt.Errorf("%w, got '%c'", ErrExpectedRangeDelimiter, r),
			Start: charStart,
			End:   rd.position(),
		}
	}

	rd.next()

	if _, more := rd.peek(); !more {
		return Rng{Start: first}, nil
	}

	end, perr := parseBound(rd, pol)
	if perr != nil {
		return Rng{}, perr
	}

	if first > end {
		return Rng{}, &ParseError{
			Err:   fmt.Errorf("%w: %d > %d", ErrRangeStartOverEnd, first, end),
			Start: firstStart,
			End:   rd.position(),
		}
	}

	return Rng{Start: first, End: end, Bounded: true}, nil
}

func parseBound(rd *reader, pol rangePolicy) (uint64, *ParseError) {
	start := rd.position()

	n, perr := parseUint(rd, pol.max)
	if perr != nil {
		return 0, perr
	}

	if n == 0 && !pol.allowZero {
		return 0, &ParseError{Err: ErrIndexZero, Start: start, End: rd.position()}
	}

	return n, nil
}

// ParseNumberRange parses a standalone numeric interval such as "1-10", "5-",
// "-10" or "-". The delimiter is mandatory, so a bare number is rejected with
// ErrExpectedRangeDelimiter. This is the entry point the seq generator shares
// with the substring filter grammar.
func ParseNumberRange(input string) (Rng, error) {
	chars := make([]Char, 0, len(input))
	for _, r := range input {
		chars = append(chars, rawChar(r))
	}

	rd := newReader(chars, 0)

	rng, perr := parseRange(rd, numberPolicy)
	if perr != nil {
		perr.Source = input

		return Rng{}, perr
	}

	if p := rd.position(); p < rd.end() {
		rd.next()

		return Rng{}, &ParseError{Err: ErrUnexpectedCharacter, Source: input, Start: p, End: rd.position()}
	}

	return rng, nil
}
