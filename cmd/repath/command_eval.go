package main

import (
	"fmt"
	"os"
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Pattern string   `arg:"" help:"Pattern such as 'img_{c|<03}.{e|l}'"`
	Values  []string `arg:"" optional:"" help:"Input values; stdin is read when omitted"`

	PatternFlags
	PrintNul bool `short:"Z" help:"Write NUL separated output"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	sess, err := newSession(ctx)
	if err != nil {
		return err
	}

	rw, err := newRewriter(sess, cmd.Pattern, &cmd.PatternFlags)
	if err != nil {
		return err
	}

	writer := newOutputWriter(sess, cmd.PrintNul)
	defer writer.Flush()

	var total, failed int

	err = forEachInput(cmd.Values, cmd.ReadNul || sess.config.ReadNul, func(value string) error {
		total++

		output, err := rw.rewrite(value)
		if err != nil {
			if !cmd.FailAtEnd {
				return err
			}

			failed++

			if !sess.printer.RenderError(err) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

			return nil
		}

		return writer.WriteValue(output)
	})
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrSomeInputsFailed, failed, total)
	}

	return nil
}
