package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/cowwoc/capi/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion. It must be
// handled before flag.Parse.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"summary":   {},
		"cash":      {},
		"trades":    {Flags: map[string]complete.Predictor{"symbol": predict.Something}},
		"forex":     {},
		"transfers": {},
		"dividends": {},
		"export":    {Flags: map[string]complete.Predictor{"o": predict.Files("*.json")}},
		"topic":     {},
		"help":      {},
		"flags":     {},
		"commands":  {},
	},
	Flags: map[string]complete.Predictor{
		"statement": predict.Files("*.csv"),
	},
}

func main() {
	completion.Complete("cas")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
