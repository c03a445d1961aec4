package cmd

import (
	"context"
	"flag"

	"github.com/cowwoc/capi/renderer"
	"github.com/google/subcommands"
)

type transfersCmd struct{}

func (*transfersCmd) Name() string     { return "transfers" }
func (*transfersCmd) Synopsis() string { return "list the deposits and withdrawals" }
func (*transfersCmd) Usage() string {
	return `cas transfers

  Lists the deposits into and withdrawals out of the account, by settle date.
`
}

func (c *transfersCmd) SetFlags(f *flag.FlagSet) {}

func (c *transfersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := loadStatement()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TransfersMarkdown(statement.Deposits))
	return subcommands.ExitSuccess
}
