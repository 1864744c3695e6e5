package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/shibukawa/repath/pattern"
	"github.com/shibukawa/repath/textio"
)

// Sentinel errors
var (
	ErrUnboundedSequence = errors.New("sequence range must have an end")
	ErrZeroStep          = errors.New("sequence step must not be zero")
)

// SeqCmd represents the seq command
type SeqCmd struct {
	Range    string `arg:"" help:"Numeric interval such as 1-10 or -10"`
	Step     uint64 `help:"Increment between values" default:"1"`
	PrintNul bool   `short:"Z" help:"Write NUL separated output"`
}

// Run executes the seq command
func (cmd *SeqCmd) Run(ctx *Context) error {
	if cmd.Step == 0 {
		return ErrZeroStep
	}

	rng, err := pattern.ParseNumberRange(cmd.Range)
	if err != nil {
		return err
	}

	if !rng.Bounded {
		return ErrUnboundedSequence
	}

	writer := textio.NewWriter(os.Stdout, cmd.PrintNul)
	defer writer.Flush()

	return writeSequence(writer, rng, cmd.Step)
}

func writeSequence(writer *textio.Writer, rng pattern.Rng, step uint64) error {
	for value := rng.Start; ; value += step {
		if err := writer.WriteValue(strconv.FormatUint(value, 10)); err != nil {
			return err
		}

		// Stop before an overflowing increment.
		if rng.End-value < step {
			break
		}
	}

	return nil
}
