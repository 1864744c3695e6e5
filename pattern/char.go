package pattern

import (
	"fmt"
	"unicode/utf8"
)

// DefaultEscape is the escape character used when the caller does not override it.
const DefaultEscape = '\\'

// Char is one logical character of a pattern: either a raw source character or
// the resolved value of a two-character escape sequence. width always records
// the number of source bytes the logical character occupied, so summing widths
// over consumed characters yields exact offsets into the untouched source.
type Char struct {
	value   rune
	escaped bool
	width   int
}

func rawChar(r rune) Char {
	return Char{value: r, width: utf8.RuneLen(r)}
}

func escapedChar(r rune, escape, code rune) Char {
	return Char{value: r, escaped: true, width: utf8.RuneLen(escape) + utf8.RuneLen(code)}
}

// isRaw reports whether the character is the raw rune r, not an escaped form of it.
// Structural characters ('{', '}', '|') only count when raw.
func (c Char) isRaw(r rune) bool {
	return !c.escaped && c.value == r
}

// decodeChars resolves escape sequences in source into logical characters.
// Recognized codes after the escape character are n, r, t, 0, '{', '}', '|'
// and the escape character itself; anything else fails with ErrUnknownEscape
// spanning the two-character sequence.
func decodeChars(source string, escape rune) ([]Char, *ParseError) {
	chars := make([]Char, 0, len(source))

	runes := []rune(source)
	offset := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != escape {
			chars = append(chars, rawChar(r))
			offset += utf8.RuneLen(r)

			continue
		}

		if i+1 >= len(runes) {
			return nil, &ParseError{
				Err:    fmt.Errorf("%w: trailing '%c'", ErrUnknownEscape, escape),
				Source: source,
				Start:  offset,
				End:    offset + utf8.RuneLen(escape),
			}
		}

		code := runes[i+1]

		var resolved rune

		switch code {
		case 'n':
			resolved = '\n'
		case 'r':
			resolved = '\r'
		case 't':
			resolved = '\t'
		case '0':
			resolved = 0
		case exprStart, exprEnd, pipe, escape:
			resolved = code
		default:
			return nil, &ParseError{
				Err:    fmt.Errorf("%w: '%c%c'", ErrUnknownEscape, escape, code),
				Source: source,
				Start:  offset,
				End:    offset + utf8.RuneLen(escape) + utf8.RuneLen(code),
			}
		}

		chars = append(chars, escapedChar(resolved, escape, code))
		offset += utf8.RuneLen(escape) + utf8.RuneLen(code)
		i++
	}

	return chars, nil
}
