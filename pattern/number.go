package pattern

import "fmt"

// parseUint consumes a maximal run of ASCII digits and parses them as a
// decimal value no greater than max. Leading zeros are permitted. An empty
// digit run fails with ErrExpectedNumber spanning from the current position to
// the end of the segment; a run that does not fit fails with
// ErrIntegerOverflow spanning exactly the consumed digits.
func parseUint(rd *reader, max uint64) (uint64, *ParseError) {
	start := rd.position()

	var (
		value    uint64
		digits   int
		overflow bool
	)

	for {
		r, ok := rd.peek()
		if !ok || r < '0' || r > '9' {
			break
		}

		rd.next()

		digits++

		if overflow {
			continue
		}

		d := uint64(r - '0')
		if value > (max-d)/10 {
			overflow = true

			continue
		}

		value = value*10 + d
	}

	if digits == 0 {
		return 0, &ParseError{Err: ErrExpectedNumber, Start: start, End: rd.end()}
	}

	if overflow {
		return 0, &ParseError{
			Err:   fmt.Errorf("%w: maximum is %d", ErrIntegerOverflow, max),
			Start: start,
			End:   rd.position(),
		}
	}

	return value, nil
}
