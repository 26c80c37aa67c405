package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitecake/cmd/sitecake/commands"
	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecake/internal/metrics"
	"git.home.luguber.info/inful/sitecake/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the process exit code.
func run(args []string) int {
	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("sitecake"),
		kong.Description("Inspect and edit sitecake-managed HTML pages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	global := commands.NewGlobal(os.Stdout)
	runErr := kctx.Run(global, &cli)

	if cli.MetricsDump {
		if err := metrics.WriteText(os.Stderr, global.Registry); err != nil {
			global.Logger.Warn("Failed to write metrics", "error", err)
		}
	}

	return errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Report(os.Stderr, runErr)
}
