package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/shibukawa/repath/fsop"
)

// ErrConflictingOverwrite is returned when both overwrite policies are requested.
var ErrConflictingOverwrite = errors.New("--overwrite and --skip-existing are mutually exclusive")

// TransferFlags are shared by the move and copy commands.
type TransferFlags struct {
	PatternFlags
	DryRun       bool `short:"n" help:"Print planned operations without touching the filesystem"`
	Overwrite    bool `help:"Replace existing target files"`
	SkipExisting bool `help:"Silently skip inputs whose target already exists"`
}

// MoveCmd represents the move command
type MoveCmd struct {
	Pattern string   `arg:"" help:"Pattern producing the target path for each input"`
	Paths   []string `arg:"" optional:"" help:"Source paths; stdin is read when omitted"`

	TransferFlags
}

// Run executes the move command
func (cmd *MoveCmd) Run(ctx *Context) error {
	return runTransfer(ctx, cmd.Pattern, cmd.Paths, &cmd.TransferFlags, "move", fsop.Move)
}

// CopyCmd represents the copy command
type CopyCmd struct {
	Pattern string   `arg:"" help:"Pattern producing the target path for each input"`
	Paths   []string `arg:"" optional:"" help:"Source paths; stdin is read when omitted"`

	TransferFlags
}

// Run executes the copy command
func (cmd *CopyCmd) Run(ctx *Context) error {
	return runTransfer(ctx, cmd.Pattern, cmd.Paths, &cmd.TransferFlags, "copy", fsop.Copy)
}

func runTransfer(ctx *Context, source string, paths []string, flags *TransferFlags, verb string, apply func(string, string, fsop.Options) (bool, error)) error {
	if flags.Overwrite && flags.SkipExisting {
		return ErrConflictingOverwrite
	}

	sess, err := newSession(ctx)
	if err != nil {
		return err
	}

	rw, err := newRewriter(sess, source, &flags.PatternFlags)
	if err != nil {
		return err
	}

	opts := fsop.Options{Mode: fsop.ModeFail, DryRun: flags.DryRun}
	if flags.Overwrite {
		opts.Mode = fsop.ModeOverwrite
	} else if flags.SkipExisting {
		opts.Mode = fsop.ModeSkip
	}

	var total, failed int

	err = forEachInput(paths, flags.ReadNul || sess.config.ReadNul, func(src string) error {
		total++

		fail := func(err error) error {
			if !flags.FailAtEnd {
				return err
			}

			failed++

			if !sess.printer.RenderError(err) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

			return nil
		}

		dst, err := rw.rewrite(src)
		if err != nil {
			return fail(err)
		}

		if flags.DryRun {
			if !ctx.Quiet {
				fmt.Printf("%s %s -> %s\n", verb, src, dst)
			}

			return nil
		}

		performed, err := apply(src, dst, opts)
		if err != nil {
			return fail(fmt.Errorf("failed to %s %s: %w", verb, src, err))
		}

		if ctx.Verbose && !ctx.Quiet {
			if performed {
				color.Green("%s %s -> %s", verb, src, dst)
			} else {
				color.Yellow("skip %s", src)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrSomeInputsFailed, failed, total)
	}

	return nil
}
