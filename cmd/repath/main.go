package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/shibukawa/repath/highlight"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Color   string
	Verbose bool
	Quiet   bool
}

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path" default:""`
	Color   string `help:"Color output: auto, always or never" default:""`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`

	Eval    EvalCmd    `cmd:"" default:"withargs" help:"Evaluate a pattern against input values"`
	Move    MoveCmd    `cmd:"" help:"Move files to pattern-derived paths"`
	Copy    CopyCmd    `cmd:"" help:"Copy files to pattern-derived paths"`
	Explain ExplainCmd `cmd:"" help:"Show how a pattern breaks into variables and filters"`
	Seq     SeqCmd     `cmd:"" help:"Generate a numeric sequence"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("repath v0.1.0")

	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("repath"),
		kong.Description("Rewrite paths and text with a compact pattern language."),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Color:   CLI.Color,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	if err := ctx.Run(appCtx); err != nil {
		mode, _ := highlight.ParseColorMode(CLI.Color)

		printer := highlight.NewPrinter(os.Stderr, mode)
		if !printer.RenderError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
