package cmd

import (
	"context"
	"flag"

	"github.com/cowwoc/capi/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show a one-screen summary of the statement" }
func (*summaryCmd) Usage() string {
	return `cas summary

  Shows the statement period, the account, the per-currency cash balances and
  the amount of activity in the statement.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := loadStatement()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SummaryMarkdown(statement))
	return subcommands.ExitSuccess
}
