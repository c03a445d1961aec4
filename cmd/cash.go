package cmd

import (
	"context"
	"flag"

	"github.com/cowwoc/capi/renderer"
	"github.com/google/subcommands"
)

type cashCmd struct{}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "show the per-currency cash balances" }
func (*cashCmd) Usage() string {
	return `cas cash

  Shows the opening and closing cash balance of every currency held during
  the statement period.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := loadStatement()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.CashMarkdown(statement.CashActivities))
	return subcommands.ExitSuccess
}
