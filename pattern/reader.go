package pattern

import "strings"

// reader is a position-tracking cursor over a slice of logical characters.
// base is the source byte offset of the first character, so a reader over a
// sub-segment of an expression still reports offsets into the whole source.
// All parsing routines are built on peek/next/position/readToEnd only, which
// keeps range bookkeeping in one place.
type reader struct {
	chars []Char
	index int
	pos   int
	last  int
}

func newReader(chars []Char, base int) *reader {
	end := base
	for _, c := range chars {
		end += c.width
	}

	return &reader{chars: chars, pos: base, last: end}
}

// peek returns the value of the next logical character without consuming it.
func (rd *reader) peek() (rune, bool) {
	if rd.index >= len(rd.chars) {
		return 0, false
	}

	return rd.chars[rd.index].value, true
}

// next consumes and returns the next logical character.
func (rd *reader) next() (Char, bool) {
	if rd.index >= len(rd.chars) {
		return Char{}, false
	}

	c := rd.chars[rd.index]
	rd.index++
	rd.pos += c.width

	return c, true
}

// position is the source byte offset of the next unconsumed character.
func (rd *reader) position() int {
	return rd.pos
}

// end is the source byte offset just past the last character.
func (rd *reader) end() int {
	return rd.last
}

// readToEnd consumes all remaining characters and returns their values.
func (rd *reader) readToEnd() string {
	var b strings.Builder
	for {
		c, ok := rd.next()
		if !ok {
			return b.String()
		}

		b.WriteRune(c.value)
	}
}
