// Package textio reads and writes delimiter-separated values: newline
// separated text by default, NUL separated for robust path streaming. The
// pattern engine itself never touches I/O; this is the streaming layer the
// CLI feeds it from.
package textio

import (
	"bufio"
	"bytes"
	"io"
)

// Reader yields one value per delimiter-separated record. Newline mode
// accepts both LF and CRLF endings; NUL mode splits on 0x00 only.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps r. When nulDelimited is true, records are separated by NUL
// bytes instead of newlines.
func NewReader(r io.Reader, nulDelimited bool) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if nulDelimited {
		scanner.Split(scanNul)
	}

	return &Reader{scanner: scanner}
}

// Read returns the next value, or io.EOF after the last one.
func (r *Reader) Read() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return r.scanner.Text(), nil
}

// ReadAll drains the reader into a slice.
func (r *Reader) ReadAll() ([]string, error) {
	var values []string

	for {
		value, err := r.Read()
		if err == io.EOF {
			return values, nil
		}

		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}
}

// scanNul is a bufio.SplitFunc for NUL separated records. A missing trailing
// NUL still yields the final record.
func scanNul(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

// Writer writes one delimiter-terminated value at a time through a buffer.
type Writer struct {
	w     *bufio.Writer
	delim byte
}

// NewWriter wraps w, terminating values with newlines or, when nulTerminated
// is true, NUL bytes.
func NewWriter(w io.Writer, nulTerminated bool) *Writer {
	delim := byte('\n')
	if nulTerminated {
		delim = 0
	}

	return &Writer{w: bufio.NewWriter(w), delim: delim}
}

// WriteValue writes value followed by the record delimiter.
func (w *Writer) WriteValue(value string) error {
	if _, err := w.w.WriteString(value); err != nil {
		return err
	}

	return w.w.WriteByte(w.delim)
}

// Flush drains the buffer to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
