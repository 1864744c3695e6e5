package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/shibukawa/repath"
	"github.com/shibukawa/repath/counter"
	"github.com/shibukawa/repath/highlight"
	"github.com/shibukawa/repath/pattern"
	"github.com/shibukawa/repath/textio"
)

// Sentinel errors
var (
	ErrRegexRequired    = errors.New("pattern references capture groups; supply --regex")
	ErrSomeInputsFailed = errors.New("some inputs failed")
)

// PatternFlags are the flags shared by every command that evaluates a
// pattern over a stream of inputs.
type PatternFlags struct {
	Regex         string `short:"E" help:"Regular expression matched against each input; its capture groups feed {1}, {2}, ..."`
	Escape        string `help:"Override the pattern escape character"`
	WorkingDir    string `short:"w" help:"Working directory for the {p} variable" type:"path"`
	LocalCounter  string `help:"Local counter as init:step (default 1:1)"`
	GlobalCounter string `help:"Global counter as init:step (default 1:1)"`
	FailAtEnd     bool   `help:"Keep processing after an evaluation error and fail once at the end"`
	ReadNul       bool   `short:"z" help:"Read NUL separated input"`
}

// session bundles what every command resolves first: configuration and the
// diagnostic printer honoring the color policy.
type session struct {
	config  *repath.Config
	mode    highlight.ColorMode
	printer *highlight.Printer
}

func newSession(ctx *Context) (*session, error) {
	config, err := repath.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	colorName := ctx.Color
	if colorName == "" {
		colorName = config.Color
	}

	mode, err := highlight.ParseColorMode(colorName)
	if err != nil {
		return nil, err
	}

	return &session{
		config:  config,
		mode:    mode,
		printer: highlight.NewPrinter(os.Stderr, mode),
	}, nil
}

// rewriter evaluates one parsed pattern per input value, advancing counters
// and matching the capture regex before each evaluation.
type rewriter struct {
	pat      *pattern.Pattern
	regex    *regexp.Regexp
	counters *counter.Source
	workDir  string
	quote    rune
}

func newRewriter(sess *session, source string, flags *PatternFlags) (*rewriter, error) {
	escape := sess.config.EscapeRune()
	if flags.Escape != "" {
		runes := []rune(flags.Escape)
		if len(runes) != 1 {
			return nil, fmt.Errorf("%w: escape must be exactly one character, got %q", repath.ErrConfigValidation, flags.Escape)
		}

		escape = runes[0]
	}

	pat, err := pattern.Parse(source, escape)
	if err != nil {
		return nil, err
	}

	var regex *regexp.Regexp

	if flags.Regex != "" {
		regex, err = regexp.Compile(flags.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid --regex: %w", err)
		}
	}

	if pat.UsesCaptureGroups() && regex == nil {
		return nil, ErrRegexRequired
	}

	localCfg := sess.config.LocalCounter
	if flags.LocalCounter != "" {
		localCfg, err = counter.ParseConfig(flags.LocalCounter)
		if err != nil {
			return nil, err
		}
	}

	globalCfg := sess.config.GlobalCounter
	if flags.GlobalCounter != "" {
		globalCfg, err = counter.ParseConfig(flags.GlobalCounter)
		if err != nil {
			return nil, err
		}
	}

	workDir := flags.WorkingDir
	if workDir == "" {
		workDir = sess.config.WorkingDir
	}

	return &rewriter{
		pat:      pat,
		regex:    regex,
		counters: counter.NewSource(localCfg, globalCfg),
		workDir:  workDir,
		quote:    sess.config.QuoteRune(),
	}, nil
}

// rewrite produces the output value for one input.
func (rw *rewriter) rewrite(input string) (string, error) {
	local, global := rw.counters.Next(input)

	ectx := &pattern.EvalContext{
		Input:         input,
		WorkDir:       rw.workDir,
		LocalCounter:  local,
		GlobalCounter: global,
		Quote:         rw.quote,
	}

	if rw.regex != nil {
		if m := rw.regex.FindStringSubmatch(input); m != nil {
			ectx.CaptureGroups = m[1:]
		}
	}

	return rw.pat.Eval(ectx)
}

// newOutputWriter builds the stdout writer, honoring the configured output
// delimiter.
func newOutputWriter(sess *session, printNul bool) *textio.Writer {
	return textio.NewWriter(os.Stdout, printNul || sess.config.PrintNul)
}

// forEachInput applies fn to the argument values, or to stdin records when no
// arguments were given.
func forEachInput(values []string, readNul bool, fn func(string) error) error {
	if len(values) > 0 {
		for _, value := range values {
			if err := fn(value); err != nil {
				return err
			}
		}

		return nil
	}

	reader := textio.NewReader(os.Stdin, readNul)

	for {
		value, err := reader.Read()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := fn(value); err != nil {
			return err
		}
	}
}
