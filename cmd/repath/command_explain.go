package main

import (
	"os"

	"github.com/shibukawa/repath/highlight"
	"github.com/shibukawa/repath/pattern"
)

// ExplainCmd represents the explain command
type ExplainCmd struct {
	Pattern string `arg:"" help:"Pattern to break down"`
	Escape  string `help:"Override the pattern escape character"`
}

// Run executes the explain command
func (cmd *ExplainCmd) Run(ctx *Context) error {
	sess, err := newSession(ctx)
	if err != nil {
		return err
	}

	escape := sess.config.EscapeRune()
	if cmd.Escape != "" {
		escape = []rune(cmd.Escape)[0]
	}

	pat, err := pattern.Parse(cmd.Pattern, escape)
	if err != nil {
		return err
	}

	highlight.NewPrinter(os.Stdout, sess.mode).Explain(pat)

	return nil
}
