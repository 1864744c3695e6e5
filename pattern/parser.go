package pattern

import (
	"fmt"
	"strings"
)

// Structural characters of the pattern language. Escaped forms of these are
// ordinary text.
const (
	exprStart = '{'
	exprEnd   = '}'
	pipe      = '|'
)

// Parse turns a pattern source string into an immutable Pattern. The parser
// is a two-state machine: outside an expression it accumulates constant text,
// inside one it splits the expression body on raw '|' and parses the first
// segment as a variable and the rest as filters. The first error wins; there
// is no recovery.
func Parse(source string, escape rune) (*Pattern, error) {
	pat, perr := parse(source, escape)
	if perr != nil {
		perr.Source = source

		return nil, perr
	}

	return pat, nil
}

func parse(source string, escape rune) (*Pattern, *ParseError) {
	chars, perr := decodeChars(source, escape)
	if perr != nil {
		return nil, perr
	}

	if len(chars) == 0 {
		return nil, &ParseError{Err: ErrEmptyPattern, Start: 0, End: 0}
	}

	rd := newReader(chars, 0)

	var (
		items      []Parsed[Item]
		constant   strings.Builder
		constStart = rd.position()
	)

	for {
		p := rd.position()

		c, ok := rd.next()
		if !ok {
			break
		}

		if !c.isRaw(exprStart) {
			constant.WriteRune(c.value)

			continue
		}

		if constant.Len() > 0 {
			items = append(items, Parsed[Item]{
				Value: Item{Kind: ItemConstant, Constant: constant.String()},
				Start: constStart,
				End:   p,
			})
			constant.Reset()
		}

		expr, perr := parseExpression(rd, p)
		if perr != nil {
			return nil, perr
		}

		items = append(items, expr)
		constStart = rd.position()
	}

	if constant.Len() > 0 {
		items = append(items, Parsed[Item]{
			Value: Item{Kind: ItemConstant, Constant: constant.String()},
			Start: constStart,
			End:   rd.position(),
		})
	}

	return &Pattern{source: source, items: items}, nil
}

// segment is one '|'-separated part of an expression body, with its source
// byte range so node ranges stay exact.
type segment struct {
	chars []Char
	start int
	end   int
}

// parseExpression is entered with the reader just past the opening '{'.
// openStart is the source offset of that brace.
func parseExpression(rd *reader, openStart int) (Parsed[Item], *ParseError) {
	openEnd := rd.position()

	segments, closeEnd, perr := splitExpression(rd, openEnd)
	if perr != nil {
		return Parsed[Item]{}, perr
	}

	variable, perr := parseVariable(newReader(segments[0].chars, segments[0].start))
	if perr != nil {
		return Parsed[Item]{}, perr
	}

	var filters []Parsed[Filter]

	for _, seg := range segments[1:] {
		if len(seg.chars) == 0 {
			return Parsed[Item]{}, &ParseError{Err: ErrExpectedFilter, Start: seg.start - 1, End: seg.start}
		}

		filter, perr := parseFilter(newReader(seg.chars, seg.start))
		if perr != nil {
			return Parsed[Item]{}, perr
		}

		filters = append(filters, filter)
	}

	return Parsed[Item]{
		Value: Item{Kind: ItemExpression, Variable: variable, Filters: filters},
		Start: openStart,
		End:   closeEnd,
	}, nil
}

// splitExpression collects the expression body up to the raw closing '}' and
// splits it on raw pipes. Running out of input fails with ErrUnexpectedExprEnd
// located just past the opening brace.
func splitExpression(rd *reader, openEnd int) ([]segment, int, *ParseError) {
	var (
		segments []segment
		current  []Char
		segStart = rd.position()
	)

	for {
		p := rd.position()

		c, ok := rd.next()
		if !ok {
			return nil, 0, &ParseError{Err: ErrUnexpectedExprEnd, Start: openEnd, End: openEnd}
		}

		if c.isRaw(exprEnd) {
			segments = append(segments, segment{chars: current, start: segStart, end: p})

			return segments, rd.position(), nil
		}

		if c.isRaw(pipe) {
			segments = append(segments, segment{chars: current, start: segStart, end: p})
			current = nil
			segStart = rd.position()

			continue
		}

		current = append(current, c)
	}
}

// ensureDone fails when a segment still has characters after a complete
// variable or filter parse.
func ensureDone(rd *reader) *ParseError {
	p := rd.position()

	c, ok := rd.next()
	if !ok {
		return nil
	}

	return &ParseError{
		Err:   fmt.Errorf("%w: '%c'", ErrUnexpectedCharacter, c.value),
		Start: p,
		End:   rd.position(),
	}
}
