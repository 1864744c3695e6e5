// Package highlight renders pattern diagnostics for the terminal: parse and
// evaluation errors underlined beneath the offending part of the pattern
// text, and colorized explain listings. The engine only reports values and
// byte ranges; everything visual lives here.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/shibukawa/repath/pattern"
)

// ErrInvalidColorMode is returned for color mode strings other than auto,
// always and never.
var ErrInvalidColorMode = errors.New("invalid color mode")

// ColorMode selects when output is colorized.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("%w: %q (expected auto, always or never)", ErrInvalidColorMode, s)
	}
}

// Printer writes highlighted diagnostics to one output stream.
type Printer struct {
	out     io.Writer
	enabled bool
}

// NewPrinter creates a printer for out. In ColorAuto mode colors are enabled
// only when out is a terminal.
func NewPrinter(out io.Writer, mode ColorMode) *Printer {
	enabled := false

	switch mode {
	case ColorAlways:
		enabled = true
	case ColorNever:
		enabled = false
	case ColorAuto:
		if f, ok := out.(*os.File); ok {
			enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	return &Printer{out: out, enabled: enabled}
}

var explainPalette = []color.Attribute{
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgCyan,
}

// RenderError prints a located pattern error with the source text and a caret
// line beneath the failing range. It reports whether err carried a range; the
// caller falls back to plain rendering otherwise.
func (p *Printer) RenderError(err error) bool {
	var parseErr *pattern.ParseError
	if errors.As(err, &parseErr) {
		p.renderRange(parseErr.Unwrap().Error(), parseErr.Source, parseErr.Start, parseErr.End)

		return true
	}

	var evalErr *pattern.EvalError
	if errors.As(err, &evalErr) {
		p.renderRange(evalErr.Unwrap().Error(), evalErr.Source, evalErr.Start, evalErr.End)
		fmt.Fprintf(p.out, "input: %q\n", evalErr.Input)

		return true
	}

	return false
}

func (p *Printer) renderRange(message, source string, start, end int) {
	errColor := p.newColor(color.FgRed, color.Bold)

	errColor.Fprint(p.out, "error")
	fmt.Fprintf(p.out, ": %s\n", message)

	if source == "" {
		return
	}

	fmt.Fprintf(p.out, "    %s\n", source)
	fmt.Fprint(p.out, "    ", strings.Repeat(" ", indentColumns(source, start)))
	errColor.Fprintln(p.out, strings.Repeat("^", caretColumns(source, start, end)))
}

// Explain prints the pattern and one line per node, cycling colors so the
// caret runs visually match their descriptions.
func (p *Printer) Explain(pat *pattern.Pattern) {
	source := pat.Source()
	fmt.Fprintf(p.out, "%s\n", source)

	for i, node := range pat.Explain() {
		c := p.newColor(explainPalette[i%len(explainPalette)])

		fmt.Fprint(p.out, strings.Repeat(" ", indentColumns(source, node.Start)))
		c.Fprint(p.out, strings.Repeat("^", caretColumns(source, node.Start, node.End)))
		fmt.Fprint(p.out, " ")
		c.Fprintln(p.out, node.Description)
	}
}

func (p *Printer) newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}

// indentColumns converts the byte offset to display columns (runes).
func indentColumns(source string, start int) int {
	if start > len(source) {
		start = len(source)
	}

	return utf8.RuneCountInString(source[:start])
}

// caretColumns is the display width of [start, end), at least one column so
// zero-width ranges (e.g. end of input) still get a caret.
func caretColumns(source string, start, end int) int {
	if end > len(source) {
		end = len(source)
	}

	if start >= end {
		return 1
	}

	return utf8.RuneCountInString(source[start:end])
}
