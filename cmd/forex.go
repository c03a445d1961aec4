package cmd

import (
	"context"
	"flag"

	"github.com/cowwoc/capi/renderer"
	"github.com/google/subcommands"
)

type forexCmd struct{}

func (*forexCmd) Name() string     { return "forex" }
func (*forexCmd) Synopsis() string { return "list the currency conversions" }
func (*forexCmd) Usage() string {
	return `cas forex

  Lists the currency conversions of the statement in execution order.
`
}

func (c *forexCmd) SetFlags(f *flag.FlagSet) {}

func (c *forexCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := loadStatement()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ForexMarkdown(statement.Forex))
	return subcommands.ExitSuccess
}
